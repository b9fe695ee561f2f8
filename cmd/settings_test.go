package cmd

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xolan/truflow/internal/backupserver"
	"github.com/xolan/truflow/internal/service"
)

func TestSettingsShow(t *testing.T) {
	env := setupCmdEnv(t)

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out := env.mustRun(t, args...)
		expectContains(t, out, "Pomodoro:  25 min", "Break:     5 min",
			"Buckets:   Email, Meetings, Tinkering/Research, Whirlwind, EDCOR",
			"Labels:    (none)", "Sync URL:  (disabled)")
	}
}

func TestSettingsSet(t *testing.T) {
	env := setupCmdEnv(t)

	out := env.mustRun(t, "settings", "set", "--pomo", "50", "--break", "10")
	expectContains(t, out, "Pomodoro:  50 min", "Break:     10 min")

	out = env.mustRun(t, "pomo")
	expectContains(t, out, "Remaining: 50:00")

	env.expectFailure(t, "No settings to change", "settings", "set")
	env.expectFailure(t, "Invalid settings", "settings", "set", "--pomo", "90")

	if got := env.services(t).Settings.Get().PomoDuration; got != 50 {
		t.Errorf("PomoDuration = %d, want 50 after the rejected change", got)
	}
}

func TestSettingsBucketsAndLabels(t *testing.T) {
	env := setupCmdEnv(t)

	out := env.mustRun(t, "settings", "bucket", "add", "Deep", "work")
	expectContains(t, out, "Whirlwind, EDCOR, Deep work")

	out = env.mustRun(t, "settings", "bucket", "remove", "EDCOR")
	expectContains(t, out, "Whirlwind, Deep work")

	out = env.mustRun(t, "settings", "label", "add", "urgent")
	expectContains(t, out, "Labels:    urgent")

	env.expectFailure(t, "Nothing to remove", "settings", "label", "remove", "missing")
}

// startBackupServer serves a fresh backup endpoint and sets it as the sync URL.
func startBackupServer(t *testing.T, env *cmdEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := backupserver.New(filepath.Join(t.TempDir(), "backup.json"), nil)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	env.mustRun(t, "settings", "set", "--sync-url", ts.URL+"/")
}

func TestSync_Disabled(t *testing.T) {
	env := setupCmdEnv(t)

	env.expectFailure(t, "Sync is disabled", "sync", "push")
	env.expectFailure(t, "Sync is disabled", "sync", "pull")
}

func TestSync_PushThenPull(t *testing.T) {
	env := setupCmdEnv(t)
	startBackupServer(t, env)
	env.mustRun(t, "board", "add", "Website")
	env.mustRun(t, "todo", "add", "Ship", "release")

	out := env.mustRun(t, "sync", "push")
	expectContains(t, out, "Backed up 1 project, 1 task, 0 time logs")

	env.mustRun(t, "todo", "add", "Local", "only")
	out = env.mustRun(t, "sync", "pull")
	expectContains(t, out, "Restored 1 project, 1 task, 0 time logs")

	if tasks := env.services(t).Todo.List(); len(tasks) != 1 || tasks[0].Text != "Ship release" {
		t.Errorf("expected the pulled task only, got %+v", tasks)
	}
}

func TestSync_PullWithoutBackup(t *testing.T) {
	env := setupCmdEnv(t)
	startBackupServer(t, env)

	env.expectFailure(t, "No backup found", "sync", "pull")
}

func TestBackupServerCmd(t *testing.T) {
	env := setupCmdEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := env.runContext(t, ctx, "backup-server", "--addr", "127.0.0.1:0"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	expectContains(t, env.stdout.String(), "Serving backups on 127.0.0.1:0",
		filepath.Join(env.dir, "backup.json"), "Backup server stopped")
}

func TestConfigCmd(t *testing.T) {
	env := setupCmdEnv(t)
	path := filepath.Join(env.dir, "config.toml")

	out := env.mustRun(t, "config")
	expectContains(t, out, "Status: Using defaults", "theme:", "Data directory: "+env.dir)

	out = env.mustRun(t, "config", "--path")
	expectContains(t, out, path)

	out = env.mustRun(t, "config", "--init")
	expectContains(t, out, "Created config file: "+path)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file: %v", err)
	}

	out = env.mustRun(t, "config")
	expectContains(t, out, "Status: File exists")

	env.expectFailure(t, "already exists", "config", "--init")
}

func TestTUICmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"subcommand", []string{"tui"}},
		{"root flag", []string{"--tui"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCmdEnv(t)
			orig := runDashboard
			t.Cleanup(func() { runDashboard = orig })

			var got *service.Services
			runDashboard = func(s *service.Services) error {
				got = s
				return nil
			}

			out := env.mustRun(t, tt.args...)

			if got == nil {
				t.Fatal("dashboard was not started")
			}
			if out != "" {
				t.Errorf("expected no overview output, got %q", out)
			}
		})
	}
}

func TestTUICmd_Error(t *testing.T) {
	env := setupCmdEnv(t)
	orig := runDashboard
	t.Cleanup(func() { runDashboard = orig })
	runDashboard = func(*service.Services) error { return errors.New("no tty") }

	env.expectFailure(t, "Error running TUI: no tty", "tui")
}
