// Package logger provides structured logging using slog.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// New creates a configured *slog.Logger.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var output io.Writer = os.Stdout

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}
	return slog.New(handler)
}

// Default returns a JSON logger at info level.
func Default() *slog.Logger {
	return New(Config{Level: "info", Format: "json"})
}

// WithComponent returns a logger scoped to a component name.
func WithComponent(l *slog.Logger, name string) *slog.Logger {
	return l.With("component", name)
}
