package cli

import (
	"fmt"
	"io"

	"github.com/opencode-ai/typeline/internal/config"
	"github.com/opencode-ai/typeline/internal/driver"
	"github.com/opencode-ai/typeline/internal/events"
	"github.com/opencode-ai/typeline/internal/logging"
	"github.com/opencode-ai/typeline/internal/script"
	"github.com/opencode-ai/typeline/internal/tui"
)

// playPlainScript streams a script to w at its configured pace, without
// the TUI. Useful when stdout is not a terminal.
func playPlainScript(w io.Writer, file *script.File, cfg config.Config) error {
	seq, err := tui.BuildSequence(file, cfg, func(el script.Element) {
		fmt.Fprintf(w, "%c", el.Rune)
	})
	if err != nil {
		return err
	}

	defaultPace, err := cfg.DefaultPace()
	if err != nil {
		return err
	}

	done := make(chan struct{})
	drv := driver.New(seq,
		driver.WithDefaultPace(defaultPace),
		driver.WithOnFinished(func() { close(done) }),
		driver.WithRecorder(events.LogRecorder{Logger: logging.Component("playthrough")}),
	)
	defer drv.Close()

	<-done
	fmt.Fprintln(w)
	return nil
}
