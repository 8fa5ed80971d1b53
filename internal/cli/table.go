package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

const tablePadding = 2

// scriptRow is one line of `scripts list` output.
type scriptRow struct {
	Name        string
	Spans       int
	Elements    int
	Description string
}

func writeScriptTable(out io.Writer, rows []scriptRow) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	fmt.Fprintln(writer, "NAME\tSPANS\tELEMENTS\tDESCRIPTION")
	for _, row := range rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			row.Name, strconv.Itoa(row.Spans), strconv.Itoa(row.Elements), row.Description)
	}
	return writer.Flush()
}
