package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "truflow",
	Short: "A personal productivity dashboard for the terminal",
	Long: `truflow combines a Pomodoro timer, a time tracker, a kanban board and a
to-do list over one local data directory.

Usage:
  truflow                                     Show today's overview
  truflow tui                                 Open the interactive dashboard
  truflow pomo start                          Run a Pomodoro in the foreground
  truflow clock in <bucket>                   Start tracking time
  truflow clock out                           Stop tracking and log the session
  truflow log list --last 7                   List logged sessions
  truflow week [--offset -1] [--pdf week.pdf] Weekly time grid
  truflow board list                          Show the kanban board
  truflow todo add <text> --due 2024-01-20    Add a task
  truflow sync push                           Back up everything to the sync URL
  truflow validate                            Check data file health
  truflow restore <document> [n]              Restore a document from backup

Buckets are the names from 'truflow settings show' or any kanban card name.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initServices,
	PersistentPostRun: closeServices,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ShowOverview(cli.GetDeps())
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check data file health",
	Long: `Validate every data document and report whether it is present, readable,
and how many items it holds. Time logs that reports will skip are counted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateStore(cli.GetDeps())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to truflow.log in the data directory")
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"truflow version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. Long-running commands stop when ctx is
// cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
