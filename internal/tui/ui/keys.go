package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the dashboard reacts to, grouped by tab.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding
	Tab6    key.Binding

	// Actions
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Toggle  key.Binding

	// Pomodoro
	StartPause key.Binding
	Reset      key.Binding
	Plus       key.Binding
	Minus      key.Binding

	// Tracker
	ClockOut    key.Binding
	AdjustStart key.Binding

	// Week
	PrevWeek key.Binding
	NextWeek key.Binding

	// Board
	MoveLeft  key.Binding
	MoveRight key.Binding
	Priority  key.Binding

	// To-do
	ClearDone key.Binding

	// Settings
	Theme key.Binding
	Push  key.Binding
	Pull  key.Binding
}

// bind builds a binding for keys, listed in help as label.
func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the dashboard's bindings. A few keys are shared
// between tabs; only the active tab sees them.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    bind("↑/k", "up", "up", "k"),
		Down:  bind("↓/j", "down", "down", "j"),
		Left:  bind("←/h", "left", "left", "h"),
		Right: bind("→/l", "right", "right", "l"),

		NextTab: bind("tab", "next view", "tab"),
		PrevTab: bind("shift+tab", "prev view", "shift+tab"),
		Tab1:    bind("1", "pomodoro", "1"),
		Tab2:    bind("2", "tracker", "2"),
		Tab3:    bind("3", "week", "3"),
		Tab4:    bind("4", "board", "4"),
		Tab5:    bind("5", "to-do", "5"),
		Tab6:    bind("6", "settings", "6"),

		Select:  bind("enter", "select", "enter"),
		Back:    bind("esc", "back", "esc"),
		Quit:    bind("q", "quit", "q", "ctrl+c"),
		Help:    bind("?", "help", "?"),
		Refresh: bind("r", "refresh", "r"),
		New:     bind("n", "new", "n"),
		Edit:    bind("e", "edit", "e"),
		Delete:  bind("d", "delete", "d"),
		Toggle:  bind("space", "toggle", " ", "x"),

		StartPause: bind("space", "start/pause", " ", "s"),
		Reset:      bind("r", "reset", "r"),
		Plus:       bind("+", "add minute", "+", "="),
		Minus:      bind("-", "remove minute", "-"),

		ClockOut:    bind("o", "clock out", "o"),
		AdjustStart: bind("a", "adjust start", "a"),

		PrevWeek: bind("[", "prev week", "[", "left", "h"),
		NextWeek: bind("]", "next week", "]", "right", "l"),

		MoveLeft:  bind("<", "move left", "<", "H"),
		MoveRight: bind(">", "move right", ">", "L"),
		Priority:  bind("p", "priority", "p"),

		ClearDone: bind("c", "clear done", "c"),

		Theme: bind("t", "theme", "t"),
		Push:  bind("u", "sync push", "u"),
		Pull:  bind("g", "sync pull", "g"),
	}
}
