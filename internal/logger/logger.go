// Package logger builds the zerolog loggers used by the eml command.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config describes where and how much the eml command logs. It mirrors
// config.LogConfig to avoid an import cycle.
type Config struct {
	Level     string
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

type contextKey string

const loggerKey contextKey = "logger"

// DefaultLevel is used when a level cannot be parsed.
const DefaultLevel = zerolog.WarnLevel

func level(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return DefaultLevel
	}
	return lvl
}

// New creates a zerolog.Logger writing JSON to stderr at the given level. An
// invalid level is treated as warn.
func New(lvl string) zerolog.Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewWithWriter works like New, but writes to w.
func NewWithWriter(w io.Writer, lvl string) zerolog.Logger {
	return zerolog.New(w).
		Level(level(lvl)).
		With().
		Timestamp().
		Logger()
}

// NewFromConfig creates a logger from cfg. When FilePath is set, output goes
// to a rotating file. Otherwise it goes to stderr, keeping stdout free for
// the documents the command writes.
func NewFromConfig(cfg Config) zerolog.Logger {
	if cfg.FilePath == "" {
		return New(cfg.Level)
	}

	return NewWithWriter(NewFileWriter(FileConfig{
		Path:      cfg.FilePath,
		MaxSizeMB: cfg.MaxSizeMB,
		MaxFiles:  cfg.MaxFiles,
	}), cfg.Level)
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context. A context without one
// (or a nil context) gets a logger that discards everything.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}

	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return l
	}

	return zerolog.Nop()
}
