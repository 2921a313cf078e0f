package logger

import (
	"log/slog"
	"strings"
)

// New builds a logger from a LOGLEVEL string and a handler constructor.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	return slog.New(handler(getSlogLevel(level)))
}

// unknown or empty levels fall back to info
func getSlogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
