package handlers

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xolan/truflow/internal/backupserver"
	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
)

// enableSync points deps at a fresh backup server and returns its URL.
func enableSync(t *testing.T, deps *cli.Deps) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := backupserver.New(filepath.Join(t.TempDir(), "backup.json"), nil)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	url := ts.URL + "/"
	if _, err := deps.Services.Settings.Apply(service.SettingsUpdate{SyncURL: &url}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return url
}

func TestPushBackup_Disabled(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	PushBackup(context.Background(), deps)

	expectFailure(t, exitCode, stderr, "Sync is disabled")
}

func TestPullBackup_NoBackup(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	enableSync(t, deps)

	PullBackup(context.Background(), deps)

	expectFailure(t, exitCode, stderr, "No backup found")
}

func TestPushThenPullBackup(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	enableSync(t, deps)
	addCard(t, deps, cardInput("Website"))
	_, _ = deps.Services.Todo.Add("Ship release", entry.PriorityHigh, "")
	logSession(t, deps, "Email", testNow.Add(-time.Hour), 30*time.Minute)

	PushBackup(context.Background(), deps)

	expectOK(t, exitCode, stderr)
	if !strings.Contains(stdout.String(), "Backed up 1 project, 1 task, 1 time log") {
		t.Errorf("push: got %q", stdout.String())
	}

	task := deps.Services.Todo.List()[0]
	if _, err := deps.Services.Todo.Delete(task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	stdout.Reset()
	PullBackup(context.Background(), deps)

	expectOK(t, exitCode, stderr)
	if !strings.Contains(stdout.String(), "Restored 1 project, 1 task, 1 time log") {
		t.Errorf("pull: got %q", stdout.String())
	}
	if len(deps.Services.Todo.List()) != 1 {
		t.Error("pull should bring the deleted task back")
	}
}

func TestPushBackup_Unreachable(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	url := "http://127.0.0.1:1/"
	if _, err := deps.Services.Settings.Apply(service.SettingsUpdate{SyncURL: &url}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	PushBackup(context.Background(), deps)

	expectFailure(t, exitCode, stderr, "Check that the backup endpoint is reachable")
}
