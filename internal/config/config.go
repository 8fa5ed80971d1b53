// Package config loads typeline application configuration from file,
// environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opencode-ai/typeline/internal/pace"
	"github.com/opencode-ai/typeline/internal/script"
)

// Config contains application configuration.
type Config struct {
	// DefaultDelay is the per-element delay for spans without one.
	DefaultDelay time.Duration

	// Pace is the default pace preset name.
	Pace string

	// Theme selects the TUI palette.
	Theme string

	// ScriptsDir is the directory searched by `typeline scripts`.
	ScriptsDir string

	// LogLevel is the minimum log level.
	LogLevel string

	// LogFormat is "json" or "console".
	LogFormat string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultDelay: pace.DefaultDelay,
		Pace:         "constant",
		Theme:        "default",
		ScriptsDir:   "scripts",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// Load reads configuration from the given file, or from typeline.yaml in
// the working directory or $XDG_CONFIG_HOME/typeline when path is empty.
// Environment variables prefixed TYPELINE_ override file values. A
// missing config file is not an error; an explicit path that cannot be
// read is.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("default_delay", defaults.DefaultDelay)
	v.SetDefault("pace", defaults.Pace)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("scripts_dir", defaults.ScriptsDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	v.SetEnvPrefix("TYPELINE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("typeline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DefaultDelay: v.GetDuration("default_delay"),
		Pace:         strings.ToLower(strings.TrimSpace(v.GetString("pace"))),
		Theme:        strings.ToLower(strings.TrimSpace(v.GetString("theme"))),
		ScriptsDir:   v.GetString("scripts_dir"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.DefaultDelay < 0 {
		return fmt.Errorf("default_delay must not be negative")
	}
	if _, err := pace.Preset(c.Pace, c.DefaultDelay); err != nil {
		return fmt.Errorf("invalid pace: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// DefaultPace resolves the configured default pace preset.
func (c Config) DefaultPace() (script.PaceFunc, error) {
	return pace.Preset(c.Pace, c.DefaultDelay)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "typeline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "typeline")
}
