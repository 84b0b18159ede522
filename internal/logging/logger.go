// Package logging defines the structured-logging interface used across the
// project and its slog and logrus backends.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "user registered", "user_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Output formats accepted by New.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatLogrus = "logrus"
)

// New builds a Logger writing to w. Unknown formats fall back to slog JSON.
func New(format string, w io.Writer) Logger {
	switch format {
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)))
	case FormatLogrus:
		l := logrus.New()
		l.SetOutput(w)
		l.SetFormatter(&logrus.JSONFormatter{})
		return NewLogrusLogger(logrus.NewEntry(l))
	default:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
	}
}
