package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/tui"
)

// runDashboard starts the interactive UI. Tests replace it.
var runDashboard = tui.Run

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long: `Open the full-screen dashboard. It has six tabs, reachable with 1-6 or
Tab/Shift+Tab: Pomodoro, Tracker, Week, Board, To-do and Settings.

The pomodoro keeps counting while you switch tabs. A finished interval
highlights the countdown. Press ? inside any tab for its key bindings and q to quit.
"truflow --tui" is a shortcut for this command.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.PersistentFlags().Bool("tui", false, "Open the interactive dashboard instead of running a command")
}

func runTUI(deps *cli.Deps) {
	if err := runDashboard(deps.Services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag launches the dashboard when --tui was passed and reports
// whether it did.
func CheckTUIFlag(cmd *cobra.Command) bool {
	if on, _ := cmd.Root().PersistentFlags().GetBool("tui"); !on {
		return false
	}
	runTUI(cli.GetDeps())
	return true
}
