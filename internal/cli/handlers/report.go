package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/pdf"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/timeutil"
)

const (
	labelColumn = 22
	dayColumn   = 7
)

// ShowWeek prints the weekly grid offset weeks back from the current one.
// A non-empty pdfPath also renders the grid to that file.
func ShowWeek(deps *cli.Deps, offset int, pdfPath string) {
	if offset > 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: future weeks are not available, showing the current week")
	}
	report := deps.Services.Report.Week(offset)

	_, _ = fmt.Fprintf(deps.Stdout, "Week of %s\n", report.Range)
	if report.Grid.Empty() {
		_, _ = fmt.Fprintln(deps.Stdout, "No time logged this week")
	} else {
		writeWeekGrid(deps.Stdout, report)
	}

	if pdfPath == "" {
		return
	}
	doc := pdf.WeekReport{Title: "Weekly time report", Grid: report.Grid, Labels: report.Labels}
	if err := pdf.SaveWeek(pdfPath, doc); err != nil {
		fail(deps, "Failed to write PDF report", err,
			fmt.Sprintf("Check that the directory is writable: %s", pdfPath))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "PDF written to %s\n", pdfPath)
}

func writeWeekGrid(w io.Writer, report service.WeekReport) {
	grid := report.Grid
	width := labelColumn + 8*(dayColumn+1) + 1

	var header strings.Builder
	fmt.Fprintf(&header, "%-*s", labelColumn, "Bucket")
	for i := range timeutil.DayNames {
		name, _ := grid.Window.DayLabel(i)
		fmt.Fprintf(&header, " %*s", dayColumn, name)
	}
	fmt.Fprintf(&header, " %*s", dayColumn+1, "Total")
	_, _ = fmt.Fprintln(w, header.String())
	_, _ = fmt.Fprintln(w, strings.Repeat("-", width))

	for i, row := range grid.Rows {
		_, _ = fmt.Fprintln(w, gridLine(cli.Truncate(report.Labels[i], labelColumn), row.Days, row.Total))
	}

	_, _ = fmt.Fprintln(w, strings.Repeat("-", width))
	_, _ = fmt.Fprintln(w, gridLine("Total", grid.DayTotals, grid.WeekTotal))
}

func gridLine(label string, days [7]int, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", labelColumn, label)
	for _, sec := range days {
		fmt.Fprintf(&b, " %*s", dayColumn, stats.FormatCell(sec))
	}
	fmt.Fprintf(&b, " %*s", dayColumn+1, stats.FormatHM(total))
	return b.String()
}

// ShowStats prints totals and a per-bucket breakdown for a date range.
// With no range it covers all logged time.
func ShowStats(deps *cli.Deps, from, to string, last int) {
	start, end, err := timeutil.ParseDateRangeFlags(from, to, last, deps.Services.Now())
	if err != nil {
		fail(deps, "Invalid date range", err, "Use YYYY-MM-DD or DD/MM/YYYY dates, or --last N days")
		return
	}

	result := deps.Services.Report.Stats(start, end)
	st := result.Statistics

	if st.EntryCount == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No time logged for %s\n", result.Period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s:\n", result.Period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total time:      %s\n", cli.FormatDuration(st.TotalSeconds))
	_, _ = fmt.Fprintf(deps.Stdout, "Sessions:        %d\n", st.EntryCount)
	_, _ = fmt.Fprintf(deps.Stdout, "Days with work:  %d %s\n", st.DaysWithEntries, cli.Pluralize("day", st.DaysWithEntries))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day: %s\n", cli.FormatDuration(int(st.AverageSecondsPerDay)))

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for i, b := range result.Buckets {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-28s  %10s  (%d %s)\n",
			cli.Truncate(result.Labels[i], 28),
			cli.FormatDuration(b.TotalSeconds),
			b.EntryCount,
			cli.Pluralize("session", b.EntryCount))
	}
}
