package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
)

// ClockIn starts a tracker session against a bucket.
func ClockIn(deps *cli.Deps, bucket string) {
	tracker := deps.Services.Tracker
	active, err := tracker.ClockIn(bucket)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyClockedIn) && active != nil:
			_, _ = fmt.Fprintln(deps.Stderr, "Warning: Already clocked in")
			_, _ = fmt.Fprintf(deps.Stderr, "Current session: %s\n", tracker.Label(active.Bucket))
			_, _ = fmt.Fprintf(deps.Stderr, "Started: %s\n", cli.FormatStartTime(active.StartTime.Local(), deps.Services.Now()))
			_, _ = fmt.Fprintln(deps.Stderr)
			_, _ = fmt.Fprintln(deps.Stderr, "Options:")
			_, _ = fmt.Fprintln(deps.Stderr, "  - Clock out first with 'truflow clock out'")
			deps.Exit(1)
		case errors.Is(err, service.ErrEmptyBucket):
			fail(deps, "Bucket cannot be empty", nil,
				"Usage: truflow clock in <bucket>",
				"Example: truflow clock in Email")
		case errors.Is(err, service.ErrUnknownBucket):
			fail(deps, fmt.Sprintf("Unknown bucket '%s'", bucket), err,
				"Choose one of: "+bucketChoices(deps))
		default:
			fail(deps, "Failed to clock in", err)
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clocked in: %s at %s\n",
		tracker.Label(active.Bucket), active.StartTime.Local().Format("15:04"))
}

// ClockOut closes the running session into a time log.
func ClockOut(deps *cli.Deps) {
	log, err := deps.Services.Tracker.ClockOut()
	if err != nil {
		if errors.Is(err, service.ErrNotClockedIn) {
			fail(deps, "Not clocked in", nil, "Start a session with 'truflow clock in <bucket>'")
			return
		}
		fail(deps, "Failed to clock out", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Clocked out: %s (%s)\n",
		deps.Services.Tracker.Label(log.Bucket), stats.FormatElapsed(log.DurationSeconds()))
}

// ShowClockStatus prints the running session and this week's bucket totals.
func ShowClockStatus(deps *cli.Deps) {
	tracker := deps.Services.Tracker
	status := tracker.Status()

	if !status.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "Not clocked in")
		_, _ = fmt.Fprintln(deps.Stdout, "Start a session with: truflow clock in <bucket>")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Clocked in:")
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", status.Label)
		_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatStartTime(status.Start.Local(), deps.Services.Now()))
		_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", stats.FormatElapsed(status.Elapsed))
	}

	totals := tracker.WeekTotals()
	if len(totals) == 0 {
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "This week:")
	for _, opt := range tracker.Buckets() {
		if sec, ok := totals[opt.Bucket]; ok && sec > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-28s %8s\n", cli.Truncate(opt.Label, 28), stats.FormatHM(sec))
		}
	}
}

// AdjustClockStart moves the running session's start time.
func AdjustClockStart(deps *cli.Deps, clock string) {
	active, err := deps.Services.Tracker.AdjustStart(clock)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotClockedIn):
			fail(deps, "Not clocked in", nil, "Start a session with 'truflow clock in <bucket>'")
		case errors.Is(err, service.ErrFutureStart):
			fail(deps, fmt.Sprintf("Start time %s is in the future", clock), nil)
		default:
			fail(deps, fmt.Sprintf("Invalid time '%s'", clock), err, "Use 24-hour HH:MM, e.g. 08:45")
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Session start moved to %s\n", active.StartTime.Local().Format("15:04"))
}

// ListBuckets prints every bucket a session can be clocked into.
func ListBuckets(deps *cli.Deps) {
	for _, opt := range deps.Services.Tracker.Buckets() {
		if id, ok := opt.Bucket.ProjectID(); ok {
			_, _ = fmt.Fprintf(deps.Stdout, "  %-28s project:%s\n", opt.Label, service.ShortID(id))
			continue
		}
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", opt.Label)
	}
}

func bucketChoices(deps *cli.Deps) string {
	opts := deps.Services.Tracker.Buckets()
	labels := make([]string, len(opts))
	for i, opt := range opts {
		labels[i] = opt.Label
	}
	return strings.Join(labels, ", ")
}
