package ui

import (
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
)

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// PomodoroStateMsg carries a Pomodoro state change from the ticking goroutine.
type PomodoroStateMsg struct {
	State entry.PomodoroState
}

// PomodoroCompletedMsg reports a finished interval.
type PomodoroCompletedMsg struct {
	Finished entry.Mode
	Next     entry.Mode
}

// SyncDoneMsg reports the outcome of a push or pull.
type SyncDoneMsg struct {
	Pull   bool
	Result service.SyncResult
	Err    error
}

// DataChangedMsg asks every view to reload from the store, after a pull
// replaced the data or a settings change.
type DataChangedMsg struct{}
