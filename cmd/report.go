package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
)

// reportCmd represents the week report command
var reportCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"report"},
	Short:   "Show the weekly time grid",
	Long: `Show time per bucket for each day of a Monday-to-Sunday week, with daily and
weekly totals. Only closed sessions count, attributed to the day they started.

Examples:
  truflow week                        This week
  truflow week --offset -1            Last week
  truflow week --pdf week.pdf         Also write the grid to a PDF file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		offset, _ := cmd.Flags().GetInt("offset")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		handlers.ShowWeek(cli.GetDeps(), offset, pdfPath)
	},
}

func init() {
	reportCmd.Flags().Int("offset", 0, "Week offset from the current week (0 or negative)")
	reportCmd.Flags().String("pdf", "", "Write the grid to this PDF file")
	rootCmd.AddCommand(reportCmd)
}
