package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
	"github.com/xolan/truflow/internal/store"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <document> [backup_number]",
	Short: "Restore a document from a backup file",
	Long: `Restore one data document from a backup.

Backups are taken before import, pull and clear overwrite a document. By
default the most recent backup (.bak.1) is restored; older ones are 2 and 3.

Documents: ` + strings.Join(store.Keys, ", ") + `

Examples:
  truflow restore tasks          Restore tasks from the most recent backup
  truflow restore timeLogs 2     Restore time logs from backup #2`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: store.Keys,
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string) {
	deps := cli.GetDeps()

	backupNum := 1
	if len(args) > 1 {
		num, err := strconv.Atoi(args[1])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[1])
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	handlers.RestoreDocument(deps, args[0], backupNum)
}
