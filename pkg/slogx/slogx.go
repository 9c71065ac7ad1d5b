// Package slogx sets up structured logging for the blog service and
// threads request-scoped loggers through context.
package slogx

import (
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler and the base attributes stamped on every
// record. Values come straight from the environment at startup.
type Config struct {
	Service string
	Version string
	Env     string
	Level   string
	Format  string // "json" (default) or "text"
}

// New builds the process logger and installs it as the slog default so
// anything logging through the global functions stays structured. In
// dev the handler records source locations; production output skips
// them to keep lines short.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     parseLevel(cfg.Level),
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// parseLevel maps the LOG_LEVEL string to a slog.Level. Anything
// unrecognised, including the empty string, means info.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
