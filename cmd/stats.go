package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for logged time",
	Long: `Show total time, session count, days worked and the average per day, with a
breakdown by bucket. Without a range every logged session is included.

Examples:
  truflow stats                          All time
  truflow stats --last 30                The last 30 days
  truflow stats --from 2024-01-01 --to 2024-01-31`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		last, _ := cmd.Flags().GetInt("last")
		handlers.ShowStats(cli.GetDeps(), from, to, last)
	},
}

func init() {
	addDateRangeFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}
