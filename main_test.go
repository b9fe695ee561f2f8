package main

import (
	"errors"
	"os"
	"testing"

	"github.com/xolan/truflow/internal/osutil"
)

// useTempConfigDir points the config and default data directory at a temp dir.
func useTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(osutil.Use(osutil.Dirs{
		ConfigDir: func() (string, error) { return dir, nil },
	}))
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"truflow"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func TestRun_Success(t *testing.T) {
	useTempConfigDir(t)
	setArgs(t, "validate")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigDirFailure(t *testing.T) {
	defer osutil.Use(osutil.Dirs{
		ConfigDir: func() (string, error) { return "", errors.New("permission denied") },
	})()

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config directory failure, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	useTempConfigDir(t)
	setArgs(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	useTempConfigDir(t)
	setArgs(t, "validate")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
