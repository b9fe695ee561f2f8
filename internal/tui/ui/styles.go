package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Lists (logs, cards, tasks)
	ItemSelected lipgloss.Style
	ItemNormal   lipgloss.Style
	ItemDone     lipgloss.Style
	ItemMeta     lipgloss.Style
	ItemTime     lipgloss.Style
	Label        lipgloss.Style

	// Priority markers
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Pomodoro and tracker clocks
	ClockRunning lipgloss.Style
	ClockIdle    lipgloss.Style
	ClockFlash   lipgloss.Style
	Countdown    lipgloss.Style

	// Board columns
	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	ColumnTitle  lipgloss.Style

	// Week grid
	GridHeader lipgloss.Style
	GridCell   lipgloss.Style
	GridTotal  lipgloss.Style

	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	InputFocused lipgloss.Style
	Dialog       lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette is the set of semantic colors a style set is built from.
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	danger    lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
	selection lipgloss.TerminalColor
}

// DefaultStyles returns styles on the 256-color palette, for terminals
// without a configured theme.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),
		secondary: lipgloss.Color("39"),
		accent:    lipgloss.Color("212"),
		muted:     lipgloss.Color("240"),
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		danger:    lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
		selection: lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Purple drives tabs and titles, cyan keys and times, red the flash and errors.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightPurple(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		danger:    r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
		selection: r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.muted).
		Padding(0, 1).
		Width(26)

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		ItemSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		ItemNormal: lipgloss.NewStyle(),
		ItemDone: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),
		ItemMeta: lipgloss.NewStyle().
			Foreground(p.muted),
		ItemTime: lipgloss.NewStyle().
			Foreground(p.secondary),
		Label: lipgloss.NewStyle().
			Foreground(p.secondary),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		PriorityMedium: lipgloss.NewStyle().
			Foreground(p.warning),
		PriorityLow: lipgloss.NewStyle().
			Foreground(p.success),

		ClockRunning: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		ClockIdle: lipgloss.NewStyle().
			Foreground(p.muted),
		ClockFlash: lipgloss.NewStyle().
			Foreground(p.bg).
			Background(p.danger).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.danger),
		Countdown: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.primary),

		Column:       column,
		ColumnActive: column.BorderForeground(p.primary),
		ColumnTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		GridHeader: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		GridCell: lipgloss.NewStyle().
			Foreground(p.fg),
		GridTotal: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(18),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),

		Error: lipgloss.NewStyle().
			Foreground(p.danger),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
