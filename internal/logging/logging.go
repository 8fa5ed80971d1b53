// Package logging configures the global zerolog logger for typeline.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base zerolog.Logger = zerolog.New(io.Discard)
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Default: info.
	Level string

	// Console enables human-readable console output instead of JSON.
	Console bool

	// Output overrides the destination. Default: stderr.
	Output io.Writer
}

// Setup initializes the global logger. Safe to call more than once;
// the last call wins.
func Setup(opts Options) {
	level := parseLevel(opts.Level)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = logger
	mu.Unlock()
}

// Component returns a logger tagged with a component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
