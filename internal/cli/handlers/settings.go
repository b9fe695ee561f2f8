package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
)

// ShowSettings prints the dashboard settings.
func ShowSettings(deps *cli.Deps) {
	s := deps.Services.Settings.Get()

	labels := "(none)"
	if len(s.Labels) > 0 {
		labels = strings.Join(s.Labels, ", ")
	}
	syncURL := "(disabled)"
	if s.SyncURL != "" {
		syncURL = s.SyncURL
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Pomodoro:  %d min\n", s.WorkSeconds()/60)
	_, _ = fmt.Fprintf(deps.Stdout, "Break:     %d min\n", s.BreakSeconds()/60)
	_, _ = fmt.Fprintf(deps.Stdout, "Buckets:   %s\n", strings.Join(s.Buckets, ", "))
	_, _ = fmt.Fprintf(deps.Stdout, "Labels:    %s\n", labels)
	_, _ = fmt.Fprintf(deps.Stdout, "Columns:   %s\n", strings.Join(s.Columns(), ", "))
	_, _ = fmt.Fprintf(deps.Stdout, "Sync URL:  %s\n", syncURL)
}

// UpdateSettings applies u and prints the result.
func UpdateSettings(deps *cli.Deps, u service.SettingsUpdate) {
	_, err := deps.Services.Settings.Apply(u)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoChanges):
			fail(deps, "No settings to change", nil,
				"Usage: truflow settings set --pomo 50 --break 10",
				"       truflow settings set --sync-url https://example.com/backup")
		case errors.Is(err, entry.ErrInvalidSettings):
			fail(deps, "Invalid settings", err,
				fmt.Sprintf("Pomodoro must be %d-%d minutes and break %d-%d minutes",
					entry.MinPomoMinutes, entry.MaxPomoMinutes, entry.MinBreakMinutes, entry.MaxBreakMinutes))
		case errors.Is(err, service.ErrUnknownBucket), errors.Is(err, service.ErrUnknownLabel):
			fail(deps, "Nothing to remove", err)
		default:
			fail(deps, "Failed to save settings", err)
		}
		return
	}
	ShowSettings(deps)
}
