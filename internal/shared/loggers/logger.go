package loggers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// New creates the service logger writing JSON lines to stdout.
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a JSON logger with UTC timestamps and caller info at the given level.
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	return zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger(), nil
}

// Component returns a child logger tagged with the component name.
func Component(parent Logger, name string) Logger {
	return parent.With().Str(FieldComponent, name).Logger()
}

// Ctx extracts a logger from the context.
// Returns the disabled logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
