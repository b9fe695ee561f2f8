// Package cli provides the CLI presentation layer for the truflow dashboard.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/store"
)

// FormatDuration formats seconds as a human-readable string
// Examples: "0m", "30m", "2h", "1h 30m"
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatDateRangeForDisplay formats a date range for human-readable display.
func FormatDateRangeForDisplay(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// FormatStartTime formats a session start relative to now.
// Examples: "today at 9:05 AM", "Mon Jan 15 at 4:30 PM"
func FormatStartTime(startedAt, now time.Time) string {
	startTime := startedAt.Format("3:04 PM")
	if startedAt.Format("2006-01-02") == now.Format("2006-01-02") {
		return fmt.Sprintf("today at %s", startTime)
	}
	return fmt.Sprintf("%s at %s", startedAt.Format("Mon Jan 2"), startTime)
}

// FormatPriority renders a priority as a bracketed tag, or spaces when unset.
func FormatPriority(p entry.Priority) string {
	if p == entry.PriorityNone {
		return "   "
	}
	return "[" + string(p) + "]"
}

// FormatLog renders one time log for listing.
// Example: "a1b2c3d4  Mon Jan 15  09:00-10:30  1h 30m  Email"
func FormatLog(log entry.TimeLogEntry, label string) string {
	end := "--:--"
	if log.End != nil {
		end = log.End.Local().Format("15:04")
	}
	start := log.Start.Local()
	return fmt.Sprintf("%s  %s  %s-%s  %7s  %s",
		service.ShortID(log.ID),
		start.Format("Mon Jan 02"),
		start.Format("15:04"),
		end,
		FormatDuration(log.DurationSeconds()),
		label)
}

// FormatTask renders one to-do line.
// Example: "[x] a1b2c3d4 [H] call the bank (due 2024-01-20)"
func FormatTask(t entry.Task) string {
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s %s %s", check, service.ShortID(t.ID), FormatPriority(t.Priority), t.Text)
	if due := t.Due(); due != "" {
		line += fmt.Sprintf(" (due %s)", due)
	}
	return line
}

// FormatCard renders a kanban card summary line.
func FormatCard(p entry.Project, goal service.GoalProgress) string {
	var parts []string
	parts = append(parts, service.ShortID(p.ID), FormatPriority(p.Priority), p.Name)
	if done, total := p.ChecklistProgress(); total > 0 {
		parts = append(parts, fmt.Sprintf("(%d/%d)", done, total))
	}
	for _, l := range p.Labels {
		parts = append(parts, "#"+l)
	}
	if goal.HasGoal() {
		parts = append(parts, fmt.Sprintf("goal %d%%", goal.Percent))
	}
	return strings.Join(parts, " ")
}

// FormatHealth renders one document's validation line.
func FormatHealth(h store.KeyHealth) string {
	switch {
	case !h.Present:
		return fmt.Sprintf("  %-22s missing", h.Key)
	case !h.Valid:
		return fmt.Sprintf("  %-22s invalid (%s)", h.Key, h.Error)
	case h.Items >= 0 && h.Skipped > 0:
		return fmt.Sprintf("  %-22s ok, %d %s (%d skipped)", h.Key, h.Items, Pluralize("item", h.Items), h.Skipped)
	case h.Items >= 0:
		return fmt.Sprintf("  %-22s ok, %d %s", h.Key, h.Items, Pluralize("item", h.Items))
	default:
		return fmt.Sprintf("  %-22s ok", h.Key)
	}
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
