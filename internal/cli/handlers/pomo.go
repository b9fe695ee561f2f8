package handlers

import (
	"context"
	"fmt"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/pomodoro"
)

// ShowPomodoro prints the current interval.
func ShowPomodoro(deps *cli.Deps) {
	state := deps.Services.Pomodoro.State()
	status := "paused"
	if state.IsRunning {
		status = "running"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s\n", pomodoro.ModeLabel(state.Mode))
	_, _ = fmt.Fprintf(deps.Stdout, "  Remaining: %s\n", pomodoro.FormatTime(state.Remaining))
	_, _ = fmt.Fprintf(deps.Stdout, "  Status:    %s\n", status)
}

// RunPomodoro counts down in the foreground until the interval completes or
// ctx is cancelled, which pauses and saves the timer. On a terminal the
// countdown is redrawn in place every second.
func RunPomodoro(ctx context.Context, deps *cli.Deps) {
	p := deps.Services.Pomodoro
	state := p.State()
	_, _ = fmt.Fprintf(deps.Stdout, "Started %s (%s). Press Ctrl+C to pause.\n",
		pomodoro.ModeLabel(state.Mode), pomodoro.FormatTime(state.Remaining))

	var onChange func(entry.PomodoroState)
	live := deps.IsTerminal != nil && deps.IsTerminal()
	if live {
		onChange = func(s entry.PomodoroState) {
			_, _ = fmt.Fprintf(deps.Stdout, "\r  %s  %s ", pomodoro.FormatTime(s.Remaining), pomodoro.ModeLabel(s.Mode))
		}
	}

	res := p.Run(ctx, onChange)
	if live {
		_, _ = fmt.Fprintln(deps.Stdout)
	}

	if res.Completed {
		_, _ = fmt.Fprintf(deps.Stdout, "%s complete. Next: %s (%s)\n",
			pomodoro.ModeLabel(res.Finished), pomodoro.ModeLabel(res.State.Mode), pomodoro.FormatTime(res.State.Remaining))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Paused at %s\n", pomodoro.FormatTime(res.State.Remaining))
}

// PausePomodoro pauses a running interval.
func PausePomodoro(deps *cli.Deps) {
	if !deps.Services.Pomodoro.Pause() {
		_, _ = fmt.Fprintln(deps.Stdout, "Pomodoro is not running")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Paused at %s\n", pomodoro.FormatTime(deps.Services.Pomodoro.State().Remaining))
}

// ResetPomodoro returns to a fresh work interval.
func ResetPomodoro(deps *cli.Deps) {
	deps.Services.Pomodoro.Reset()
	state := deps.Services.Pomodoro.State()
	_, _ = fmt.Fprintf(deps.Stdout, "Reset to %s (%s)\n", pomodoro.ModeLabel(state.Mode), pomodoro.FormatTime(state.Remaining))
}

// AdjustPomodoro adds (plus) or removes a minute while paused.
func AdjustPomodoro(deps *cli.Deps, plus bool) {
	p := deps.Services.Pomodoro
	var ok bool
	if plus {
		ok = p.Plus()
	} else {
		ok = p.Minus()
	}
	if !ok {
		fail(deps, "Cannot adjust a running pomodoro", nil, "Pause it first with 'truflow pomo pause'")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Remaining: %s\n", pomodoro.FormatTime(p.State().Remaining))
}
