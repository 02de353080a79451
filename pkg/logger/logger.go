// Package logger provides the structured logger for the console.
//
// Stdout belongs to the terminal UI, so logs go to a file under the paydesk
// home directory. No business logic should depend on logging implementation
// details.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New returns a JSON slog.Logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Used in tests and as a
// fallback when the log file cannot be opened.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Open creates a file-backed logger at path, creating parent directories as
// needed. It returns the logger and a close func; on failure it falls back
// to a discard logger so the UI still starts.
func Open(path string, level slog.Level) (*slog.Logger, func() error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Discard(), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return Discard(), func() error { return nil }
	}
	return New(f, level), f.Close
}

// ParseLevel maps a config string to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
