package pomodoro

import (
	"io"
	"log/slog"

	"github.com/xolan/truflow/internal/entry"
)

// Notifier is told when an interval completes.
type Notifier interface {
	Completed(finished, next entry.Mode)
}

// NopNotifier ignores completions.
type NopNotifier struct{}

// Completed does nothing.
func (NopNotifier) Completed(entry.Mode, entry.Mode) {}

// BellNotifier rings the terminal bell and logs the completion.
type BellNotifier struct {
	W      io.Writer
	Logger *slog.Logger
}

// Completed writes BEL to W.
func (b BellNotifier) Completed(finished, next entry.Mode) {
	if b.W != nil {
		_, _ = io.WriteString(b.W, "\a")
	}
	if b.Logger != nil {
		b.Logger.Info("pomodoro interval complete", "finished", finished, "next", next)
	}
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(finished, next entry.Mode)

// Completed calls f.
func (f NotifierFunc) Completed(finished, next entry.Mode) {
	f(finished, next)
}

// MultiNotifier fans out to several notifiers in order.
type MultiNotifier []Notifier

// Completed calls every notifier.
func (mn MultiNotifier) Completed(finished, next entry.Mode) {
	for _, n := range mn {
		n.Completed(finished, next)
	}
}
