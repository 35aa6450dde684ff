package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps LOG_LEVEL values to slog levels. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewStdoutHandler is the JSON handler every process logs through.
func NewStdoutHandler(w io.Writer, level slog.Level) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(level string) slog.Handler {
	handler := NewStdoutHandler(os.Stdout, ParseLevel(level))
	slog.SetDefault(slog.New(handler))
	return handler
}
