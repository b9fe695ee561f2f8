// Package logging configures the structured logger shared by the store,
// sync client and frontends.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFile is the name of the log file inside the data directory.
const LogFile = "truflow.log"

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open returns a logger appending to <dir>/truflow.log when enabled, or a
// discarding logger otherwise. The returned close func is never nil.
func Open(dir string, enabled, verbose bool) (*slog.Logger, func() error, error) {
	if !enabled {
		return Discard(), func() error { return nil }, nil
	}

	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Discard(), func() error { return nil }, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return New(f, level), f.Close, nil
}
