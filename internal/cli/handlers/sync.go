package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/remote"
	"github.com/xolan/truflow/internal/service"
)

// PushBackup uploads all local data to the sync URL.
func PushBackup(ctx context.Context, deps *cli.Deps) {
	res, err := deps.Services.Sync.Push(ctx)
	if err != nil {
		failSync(deps, remote.PushFailedMessage, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Backed up %s\n", syncCounts(res))
}

// PullBackup replaces local data with the latest backup.
func PullBackup(ctx context.Context, deps *cli.Deps) {
	res, err := deps.Services.Sync.Pull(ctx)
	if err != nil {
		failSync(deps, "Restore failed", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored %s\n", syncCounts(res))
}

func syncCounts(res service.SyncResult) string {
	return fmt.Sprintf("%d %s, %d %s, %d time %s",
		res.Projects, cli.Pluralize("project", res.Projects),
		res.Tasks, cli.Pluralize("task", res.Tasks),
		res.TimeLogs, cli.Pluralize("log", res.TimeLogs))
}

func failSync(deps *cli.Deps, summary string, err error) {
	switch {
	case errors.Is(err, service.ErrSyncDisabled):
		fail(deps, "Sync is disabled", nil, "Set a backup URL with 'truflow settings set --sync-url <url>'")
	case errors.Is(err, remote.ErrRejected):
		fail(deps, summary, err)
	default:
		fail(deps, summary, err, "Check that the backup endpoint is reachable")
	}
}
