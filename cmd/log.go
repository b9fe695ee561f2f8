package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List and correct logged sessions",
	Long: `Logged sessions are identified by the first characters of their ID, as shown
in 'truflow log list'.`,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged sessions",
	Long: `List closed sessions with their total.

Examples:
  truflow log list                          Everything
  truflow log list --last 7                 The last 7 days
  truflow log list --from 2024-01-01 --to 2024-01-31
  truflow log list --bucket Email
  truflow log list --recent                 The most recent sessions`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := handlers.LogListOptions{}
		opts.Bucket, _ = cmd.Flags().GetString("bucket")
		opts.From, _ = cmd.Flags().GetString("from")
		opts.To, _ = cmd.Flags().GetString("to")
		opts.Last, _ = cmd.Flags().GetInt("last")
		opts.Recent, _ = cmd.Flags().GetBool("recent")
		handlers.ListLogs(cli.GetDeps(), opts)
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a session's time or bucket",
	Long: `Change a session's date, start, end or bucket. Unset fields keep their value.
An end before the start means the session ran past midnight.

Examples:
  truflow log edit 3f2a --start 09:00 --end 10:30
  truflow log edit 3f2a --date 2024-01-16
  truflow log edit 3f2a --bucket Meetings`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		bucket, _ := cmd.Flags().GetString("bucket")
		handlers.EditLog(cli.GetDeps(), args[0], date, start, end, bucket)
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteLog(cli.GetDeps(), args[0])
	},
}

func init() {
	logListCmd.Flags().String("bucket", "", "Only sessions in this bucket")
	addDateRangeFlags(logListCmd)
	logListCmd.Flags().Bool("recent", false, "Only the most recent sessions")

	logEditCmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	logEditCmd.Flags().String("start", "", "New start time (HH:MM)")
	logEditCmd.Flags().String("end", "", "New end time (HH:MM)")
	logEditCmd.Flags().String("bucket", "", "New bucket")

	logCmd.AddCommand(logListCmd, logEditCmd, logDeleteCmd)
	rootCmd.AddCommand(logCmd)
}

// addDateRangeFlags adds --from, --to and --last to cmd.
func addDateRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "The last N days, including today")
}
