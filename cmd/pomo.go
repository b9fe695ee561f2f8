package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// pomoCmd represents the pomo command
var pomoCmd = &cobra.Command{
	Use:   "pomo",
	Short: "Pomodoro timer",
	Long: `Work and break intervals with durations from settings. The remaining time is
saved, so a paused interval survives restarts.

Usage:
  truflow pomo                 Show the current interval
  truflow pomo start           Count down in the foreground (Ctrl+C pauses)
  truflow pomo pause           Pause an interval running in the dashboard
  truflow pomo reset           Back to a full work session
  truflow pomo plus|minus      Adjust a paused interval by one minute`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowPomodoro(cli.GetDeps())
	},
}

var pomoStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the current interval until it completes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RunPomodoro(cmd.Context(), cli.GetDeps())
	},
}

var pomoPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running interval",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.PausePomodoro(cli.GetDeps())
	},
}

var pomoResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset to a full work session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetPomodoro(cli.GetDeps())
	},
}

var pomoPlusCmd = &cobra.Command{
	Use:   "plus",
	Short: "Add one minute to a paused interval",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AdjustPomodoro(cli.GetDeps(), true)
	},
}

var pomoMinusCmd = &cobra.Command{
	Use:   "minus",
	Short: "Remove one minute from a paused interval",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AdjustPomodoro(cli.GetDeps(), false)
	},
}

func init() {
	pomoCmd.AddCommand(pomoStartCmd, pomoPauseCmd, pomoResetCmd, pomoPlusCmd, pomoMinusCmd)
	rootCmd.AddCommand(pomoCmd)
}
