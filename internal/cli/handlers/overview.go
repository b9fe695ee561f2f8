package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/stats"
)

// ShowOverview prints a one-screen summary of every panel.
func ShowOverview(deps *cli.Deps) {
	s := deps.Services
	now := s.Now()

	_, _ = fmt.Fprintf(deps.Stdout, "truflow - %s\n", now.Format("Monday, Jan 2"))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	state := s.Pomodoro.State()
	pomoStatus := "paused"
	if state.IsRunning {
		pomoStatus = "running"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Pomodoro:  %s %s (%s)\n",
		pomodoro.ModeLabel(state.Mode), pomodoro.FormatTime(state.Remaining), pomoStatus)

	if status := s.Tracker.Status(); status.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Tracking:  %s for %s\n", status.Label, stats.FormatElapsed(status.Elapsed))
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Tracking:  not clocked in")
	}

	week := 0
	for _, sec := range s.Tracker.WeekTotals() {
		week += sec
	}
	_, _ = fmt.Fprintf(deps.Stdout, "This week: %s\n", stats.FormatHM(week))

	board := s.Kanban.ByColumn(filter.CardFilter{})
	var counts []string
	for _, col := range board {
		if len(col.Cards) > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", col.Column, len(col.Cards)))
		}
	}
	if len(counts) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Board:     empty")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Board:     %s\n", strings.Join(counts, ", "))
	}

	cats := s.Todo.Categorized()
	_, _ = fmt.Fprintf(deps.Stdout, "To-do:     %d active, %d overdue, %d done\n",
		len(cats.Active), len(cats.Overdue), len(cats.Done))
}
