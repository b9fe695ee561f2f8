package handlers

import (
	"context"
	"strings"
	"testing"
)

func TestServeBackups_StopsOnCancel(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ServeBackups(ctx, deps, "127.0.0.1:0", "")

	expectOK(t, exitCode, stderr)
	out := stdout.String()
	if !strings.Contains(out, "Serving backups on 127.0.0.1:0") || !strings.Contains(out, DefaultBackupFile) {
		t.Errorf("got %q", out)
	}
	if !strings.Contains(out, "Backup server stopped") {
		t.Errorf("expected stop line, got %q", out)
	}
}

func TestServeBackups_BadAddress(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ServeBackups(context.Background(), deps, "127.0.0.1:99999", "")

	expectFailure(t, exitCode, stderr, "Check that the address is free")
}
