package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the application logger for the given environment:
// JSON output in production, human-readable text everywhere else.
// LOG_LEVEL selects the minimum level (debug, info, warn, error; default info).
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
