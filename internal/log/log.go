// Package log provides context-aware structured logging for cattree.
// Diagnostics go to stderr so stdout stays free for data output.
package log

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
)

type ctxKey struct{}

// Logger is the structured logger used across cattree
type Logger = charmlog.Logger

// New creates a logger writing to out.
// verbose enables debug output, quiet limits output to errors.
func New(out io.Writer, verbose, quiet bool) *Logger {
	level := charmlog.InfoLevel
	switch {
	case verbose:
		level = charmlog.DebugLevel
	case quiet:
		level = charmlog.ErrorLevel
	}

	return charmlog.NewWithOptions(out, charmlog.Options{
		Prefix:          "cattree",
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{})
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Discard()
}
