package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/config"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/service"
)

// testNow is Wednesday 2024-01-17 10:00 local.
var testNow = time.Date(2024, time.January, 17, 10, 0, 0, 0, time.Local)

// manualScheduler hands the tick callback to the test.
type manualScheduler struct {
	mu     sync.Mutex
	fn     func()
	active bool
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.active = true
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.active = false
	}
}

func (m *manualScheduler) running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *manualScheduler) tick(n int) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	for i := 0; i < n; i++ {
		fn()
	}
}

// setupTestDeps creates deps over a temp data dir with the clock pinned to testNow.
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode, _ := setupPomodoroDeps(t)
	return deps, stdout, stderr, exitCode
}

// setupPomodoroDeps also returns the scheduler driving the pomodoro.
func setupPomodoroDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int, *manualScheduler) {
	t.Helper()
	tmpDir := t.TempDir()
	sched := &manualScheduler{}

	services := service.NewServicesWithPaths(tmpDir, filepath.Join(tmpDir, "config.toml"), config.DefaultConfig(), nil,
		pomodoro.WithScheduler(sched))
	services.SetClock(func() time.Time { return testNow })
	if err := services.Store.InitDefaults(); err != nil {
		t.Fatalf("InitDefaults() error = %v", err)
	}
	t.Cleanup(func() { _ = services.Close() })

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:     stdout,
		Stderr:     stderr,
		Stdin:      strings.NewReader(""),
		Exit:       func(code int) { exitCode = code },
		IsTerminal: func() bool { return false },
		Services:   services,
	}

	return deps, stdout, stderr, &exitCode, sched
}

// setClock moves the shared clock.
func setClock(deps *cli.Deps, now time.Time) {
	deps.Services.SetClock(func() time.Time { return now })
}

func strPtr(s string) *string { return &s }

func expectOK(t *testing.T, exitCode *int, stderr *bytes.Buffer) {
	t.Helper()
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %q)", *exitCode, stderr.String())
	}
}

func expectFailure(t *testing.T, exitCode *int, stderr *bytes.Buffer, want string) {
	t.Helper()
	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("expected %q in stderr, got %q", want, stderr.String())
	}
}
