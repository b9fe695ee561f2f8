package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/xolan/truflow/internal/backupserver"
	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/logging"
)

// DefaultBackupFile is the snapshot file name used when none is given.
const DefaultBackupFile = "backup.json"

// ServeBackups runs the backup endpoint until ctx is cancelled. An empty
// file stores snapshots in the data directory.
func ServeBackups(ctx context.Context, deps *cli.Deps, addr, file string) {
	if file == "" {
		file = filepath.Join(deps.Services.Store.Dir(), DefaultBackupFile)
	}

	gin.SetMode(gin.ReleaseMode)
	logger := logging.New(deps.Stderr, slog.LevelInfo)
	server := backupserver.New(file, logger)

	_, _ = fmt.Fprintf(deps.Stdout, "Serving backups on %s (file: %s)\n", addr, file)
	_, _ = fmt.Fprintf(deps.Stdout, "Point clients at it with: truflow settings set --sync-url http://<host>%s/\n", addr)

	if err := server.Run(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fail(deps, "Backup server stopped", err, "Check that the address is free: "+addr)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Backup server stopped")
}
