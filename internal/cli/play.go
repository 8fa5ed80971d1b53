package cli

import (
	"github.com/spf13/cobra"

	"github.com/opencode-ai/typeline/internal/script"
	"github.com/opencode-ai/typeline/internal/tui"
)

var (
	playPlain bool
	playTheme string
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "stream to stdout instead of running the TUI")
	playCmd.Flags().StringVar(&playTheme, "theme", "", "theme override (default, high-contrast)")
}

var playCmd = &cobra.Command{
	Use:   "play <script>",
	Short: "Play a script file",
	Long: `Play a YAML script file, revealing its text element by element.

In the TUI, space skips to the end, r rewinds and q quits.`,
	Example: `  # Play with the terminal player
  typeline play scripts/intro.yaml

  # Stream straight to stdout
  typeline play scripts/intro.yaml --plain`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := script.Load(args[0])
		if err != nil {
			return err
		}

		cfg := appConfig
		if playTheme != "" {
			cfg.Theme = playTheme
		}

		if playPlain {
			return playPlainScript(cmd.OutOrStdout(), file, cfg)
		}
		return tui.Run(file, cfg)
	},
}
