package pomodoro

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned cancel func is called.
// Cancel must be safe to call more than once.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// TickerScheduler drives callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

// Every starts a ticker goroutine calling fn until cancelled.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return sync.OnceFunc(func() {
		ticker.Stop()
		close(done)
	})
}
