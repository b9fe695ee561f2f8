package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up to or restore from the sync URL",
	Long: `Push uploads a full snapshot of projects, tasks, time logs and settings to the
sync URL. Pull downloads the latest snapshot and replaces local data with it;
the replaced files are kept as backups.

Set the URL with 'truflow settings set --sync-url <url>', or run your own
endpoint with 'truflow backup-server'.`,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a snapshot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.PushBackup(cmd.Context(), cli.GetDeps())
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local data with the latest snapshot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.PullBackup(cmd.Context(), cli.GetDeps())
	},
}

// backupServerCmd represents the backup-server command
var backupServerCmd = &cobra.Command{
	Use:   "backup-server",
	Short: "Serve a backup endpoint for sync",
	Long: `Serve the backup endpoint that 'truflow sync' talks to. GET returns the last
snapshot and POST replaces it. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		file, _ := cmd.Flags().GetString("file")
		handlers.ServeBackups(cmd.Context(), cli.GetDeps(), addr, file)
	},
}

func init() {
	backupServerCmd.Flags().String("addr", ":8787", "Listen address")
	backupServerCmd.Flags().String("file", "", "Snapshot file (default: backup.json in the data directory)")

	syncCmd.AddCommand(syncPushCmd, syncPullCmd)
	rootCmd.AddCommand(syncCmd, backupServerCmd)
}
