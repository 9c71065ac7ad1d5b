package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithContext stashes a logger in ctx. HTTPMiddleware uses this so
// handlers log with the request id already attached.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, falling back to the process
// default when the context carries none (tests, background jobs).
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
