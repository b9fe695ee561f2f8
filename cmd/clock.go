package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// clockCmd represents the clock command
var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Clock in and out of time buckets",
	Long: `Track time against a bucket. A bucket is a name from settings, a kanban card
name, or project:<id> for a card.

Usage:
  truflow clock                    Show the running session and this week's totals
  truflow clock in Email           Start a session
  truflow clock in project:3f2a    Start a session on a card
  truflow clock out                Stop and log the session
  truflow clock adjust 08:45       Move the running session's start
  truflow clock buckets            List buckets`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowClockStatus(cli.GetDeps())
	},
}

var clockInCmd = &cobra.Command{
	Use:   "in <bucket>",
	Short: "Start a session",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockIn(cli.GetDeps(), strings.Join(args, " "))
	},
}

var clockOutCmd = &cobra.Command{
	Use:   "out",
	Short: "Stop the session and log it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockOut(cli.GetDeps())
	},
}

var clockStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowClockStatus(cli.GetDeps())
	},
}

var clockAdjustCmd = &cobra.Command{
	Use:   "adjust <HH:MM>",
	Short: "Move the running session's start time",
	Long: `Move the start of the running session to HH:MM today. The new start must
not be in the future.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AdjustClockStart(cli.GetDeps(), args[0])
	},
}

var clockBucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List the buckets you can clock into",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListBuckets(cli.GetDeps())
	},
}

func init() {
	clockCmd.AddCommand(clockInCmd, clockOutCmd, clockStatusCmd, clockAdjustCmd, clockBucketsCmd)
	rootCmd.AddCommand(clockCmd)
}
