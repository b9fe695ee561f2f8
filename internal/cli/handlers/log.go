package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/timeutil"
)

// LogListOptions selects which time logs to list.
type LogListOptions struct {
	Bucket string
	From   string
	To     string
	Last   int
	Recent bool // only the most recent closed logs, newest first
}

// ListLogs prints time logs matching opts with their total.
func ListLogs(deps *cli.Deps, opts LogListOptions) {
	tracker := deps.Services.Tracker

	if opts.Recent {
		logs := tracker.Recent(service.RecentLimit)
		if len(logs) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No time logged yet")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Recent sessions:")
		for _, log := range logs {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatLog(log, tracker.Label(log.Bucket)))
		}
		return
	}

	f := filter.LogFilter{Bucket: strings.TrimSpace(opts.Bucket)}
	if opts.From != "" || opts.To != "" || opts.Last > 0 {
		start, end, err := timeutil.ParseDateRangeFlags(opts.From, opts.To, opts.Last, deps.Services.Now())
		if err != nil {
			fail(deps, "Invalid date range", err, "Use YYYY-MM-DD or DD/MM/YYYY dates, or --last N days")
			return
		}
		f.From, f.To = start, end
	}

	logs := tracker.Logs(f)
	if len(logs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No time logs found")
		return
	}

	total := 0
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, log := range logs {
		total += log.DurationSeconds()
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatLog(log, tracker.Label(log.Bucket)))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n", cli.FormatDuration(total), len(logs), cli.Pluralize("session", len(logs)))
}

// EditLog rewrites a time log's date and interval, and optionally its bucket.
func EditLog(deps *cli.Deps, id, date, start, end, bucket string) {
	tracker := deps.Services.Tracker

	if date == "" && start == "" && end == "" && bucket == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--date, --start, --end or --bucket) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  truflow log edit <id> --start 09:00 --end 10:30")
		_, _ = fmt.Fprintln(deps.Stderr, "  truflow log edit <id> --bucket Meetings")
		deps.Exit(1)
		return
	}

	if date != "" || start != "" || end != "" {
		current, ok := findLog(deps, id)
		if !ok {
			return
		}
		if date == "" {
			date = current.Start.Local().Format(timeutil.DateLayout)
		}
		if start == "" {
			start = current.Start.Local().Format("15:04")
		}
		if end == "" {
			if current.End == nil {
				fail(deps, "Session has no end time", nil, "Pass --end HH:MM")
				return
			}
			end = current.End.Local().Format("15:04")
		}
		if _, err := tracker.EditLog(id, date, start, end); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrAmbiguousID) {
				failLookup(deps, "time log", id, err, "truflow log list")
				return
			}
			fail(deps, "Invalid date or time", err, "Use YYYY-MM-DD for --date and HH:MM for --start/--end")
			return
		}
	}

	if bucket != "" {
		if _, err := tracker.SetLogBucket(id, bucket); err != nil {
			if errors.Is(err, service.ErrUnknownBucket) || errors.Is(err, service.ErrEmptyBucket) {
				fail(deps, fmt.Sprintf("Unknown bucket '%s'", bucket), nil, "Choose one of: "+bucketChoices(deps))
				return
			}
			failLookup(deps, "time log", id, err, "truflow log list")
			return
		}
	}

	edited, ok := findLog(deps, id)
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatLog(edited, tracker.Label(edited.Bucket)))
}

// DeleteLog removes a time log.
func DeleteLog(deps *cli.Deps, id string) {
	deleted, err := deps.Services.Tracker.DeleteLog(id)
	if err != nil {
		failLookup(deps, "time log", id, err, "truflow log list")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatLog(*deleted, deps.Services.Tracker.Label(deleted.Bucket)))
}

func findLog(deps *cli.Deps, id string) (entry.TimeLogEntry, bool) {
	log, err := deps.Services.Tracker.GetLog(id)
	if err != nil {
		failLookup(deps, "time log", id, err, "truflow log list")
		return entry.TimeLogEntry{}, false
	}
	return *log, true
}
