// Package cli implements the typeline command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/opencode-ai/typeline/internal/config"
	"github.com/opencode-ai/typeline/internal/logging"
)

var (
	cfgPath      string
	logLevelFlag string

	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "typeline",
	Short: "Typewriter-style script playback in the terminal",
	Long: `Typeline plays scripts of styled text spans one element at a time,
at a configurable pace, with skip and rewind controls.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}
		appConfig = cfg

		logging.Setup(logging.Options{
			Level:   cfg.LogLevel,
			Console: cfg.LogFormat == "console",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: typeline.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override the configured log level")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
