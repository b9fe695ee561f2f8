package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a snapshot of all data",
	Long: `Write projects, tasks, time logs and settings as one JSON snapshot, the same
document the sync endpoint stores. Without a file, or with "-", the snapshot
goes to stdout.

Examples:
  truflow export                   Print the snapshot
  truflow export backup.json       Write it to a file`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		handlers.ExportData(cli.GetDeps(), path)
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace local data with a snapshot",
	Long: `Replace local data with the collections in a snapshot written by 'truflow export'.
Collections missing from the snapshot are left alone and every replaced file is
kept as a backup. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.ImportData(cli.GetDeps(), args[0], yes)
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all data and start over",
	Long: `Delete every document and reseed the default settings. The deleted files are
kept as backups and can be brought back with 'truflow restore'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.ClearData(cli.GetDeps(), yes)
	},
}

func init() {
	importCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(exportCmd, importCmd, clearCmd)
}
