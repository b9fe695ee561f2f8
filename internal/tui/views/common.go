// Package views holds one bubbletea sub-model per dashboard tab.
package views

import (
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/tui/ui"
)

// renderPriority renders a priority tag in its color, or padding when unset.
func renderPriority(styles ui.Styles, p entry.Priority) string {
	tag := cli.FormatPriority(p)
	switch p {
	case entry.PriorityHigh:
		return styles.PriorityHigh.Render(tag)
	case entry.PriorityMedium:
		return styles.PriorityMedium.Render(tag)
	case entry.PriorityLow:
		return styles.PriorityLow.Render(tag)
	}
	return tag
}

// nextPriority cycles H -> M -> L -> none -> H.
func nextPriority(p entry.Priority) entry.Priority {
	switch p {
	case entry.PriorityHigh:
		return entry.PriorityMedium
	case entry.PriorityMedium:
		return entry.PriorityLow
	case entry.PriorityLow:
		return entry.PriorityNone
	}
	return entry.PriorityHigh
}

// renderStat renders an aligned "label value" line.
func renderStat(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

// renderError renders err as a one-line message, or "" for nil.
func renderError(styles ui.Styles, err error) string {
	if err == nil {
		return ""
	}
	return styles.Error.Render(fmt.Sprintf("Error: %v", err)) + "\n\n"
}

// renderLine applies the selected style to the cursor row.
func renderLine(styles ui.Styles, line string, selected bool) string {
	if selected {
		return styles.ItemSelected.Render("▸ "+line) + "\n"
	}
	return styles.ItemNormal.Render("  "+line) + "\n"
}

// clampCursor keeps cursor inside a list of n items.
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func rule(width int) string {
	return strings.Repeat("─", min(50, max(width, 10)))
}
