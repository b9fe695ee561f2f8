package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_Disabled(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := Open(dir, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Error("should not be written")
	if err := closeFn(); err != nil {
		t.Errorf("close returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LogFile)); !os.IsNotExist(err) {
		t.Error("expected no log file when logging is disabled")
	}
}

func TestOpen_Enabled(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := Open(dir, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("hidden at info level")
	logger.Warn("storage read failed", "key", "timeLogs")
	_ = closeFn()

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "storage read failed") || !strings.Contains(content, "key=timeLogs") {
		t.Errorf("unexpected log content: %q", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Error("debug record written without verbose")
	}
}

func TestOpen_BadDir(t *testing.T) {
	_, closeFn, err := Open(filepath.Join(t.TempDir(), "missing", "dir"), true, true)
	if err == nil {
		t.Error("expected error for missing directory")
	}
	if closeFn == nil {
		t.Error("close func must never be nil")
	}
}
