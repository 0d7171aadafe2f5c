// Package logger holds the process-wide slog logger. Installed as the slog
// default so library code logging via slog lands in the same stream.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// Sane defaults until main calls Initialize with the configured values.
	Initialize("info", false)
}

// Initialize sets up the global logger. useJSON switches to the JSON
// handler for log collectors; text is friendlier in a terminal.
func Initialize(level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if useJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
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
