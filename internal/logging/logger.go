// Package logging configures structured logging with log/slog.
//
// Logs are written to stderr by the CLI because output files and stdout carry
// data. Every run gets a run id so that the lines of one invocation can be
// told apart in a shared log.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Setup configures the global slog logger and returns it.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// WithFields returns the default logger with additional structured fields.
//
// Usage:
//
//	logger := logging.WithFields("command", "join", "left", path)
//	logger.Info("join started")
func WithFields(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}

// NewRun returns the default logger tagged with a fresh run_id, and the id.
func NewRun(command string) (*slog.Logger, string) {
	id := uuid.NewString()
	return WithFields("run_id", id, "command", command), id
}
