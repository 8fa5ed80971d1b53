package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/typeline/internal/script"
	"github.com/opencode-ai/typeline/internal/tui"
)

func init() {
	rootCmd.AddCommand(scriptsCmd)
	scriptsCmd.AddCommand(scriptsListCmd)
	scriptsCmd.AddCommand(scriptsValidateCmd)
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Inspect script files",
}

var scriptsListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List scripts in a directory",
	Long:  "List scripts in a directory (default: the configured scripts_dir).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := appConfig.ScriptsDir
		if len(args) == 1 {
			dir = args[0]
		}

		files, err := script.LoadDir(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no scripts found in %s\n", dir)
			return nil
		}

		rows := make([]scriptRow, 0, len(files))
		for _, file := range files {
			seq, err := tui.BuildSequence(file, appConfig, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Source, err)
			}
			rows = append(rows, scriptRow{
				Name:        file.Name,
				Spans:       len(file.Spans),
				Elements:    seq.Len(),
				Description: file.Description,
			})
		}
		return writeScriptTable(cmd.OutOrStdout(), rows)
	},
}

var scriptsValidateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Validate a script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := script.Load(args[0])
		if err != nil {
			return err
		}
		seq, err := tui.BuildSequence(file, appConfig, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d spans, %d elements)\n",
			file.Name, len(file.Spans), seq.Len())
		return nil
	},
}
