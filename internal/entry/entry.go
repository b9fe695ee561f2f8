// Package entry defines the records kept in the document store: time logs,
// the active tracker session, kanban projects, to-do tasks and settings.
package entry

import (
	"encoding/json"
	"math"
	"time"
)

// TimeLogEntry is one work interval logged against a bucket.
// End is nil while the interval is still open.
type TimeLogEntry struct {
	ID     string
	Bucket Bucket
	Start  time.Time
	End    *time.Time
}

type timeLogJSON struct {
	ID     string  `json:"id"`
	Bucket Bucket  `json:"bucket"`
	Start  string  `json:"start"`
	End    *string `json:"end,omitempty"`
}

// MarshalJSON writes timestamps as RFC 3339 in UTC.
func (e TimeLogEntry) MarshalJSON() ([]byte, error) {
	out := timeLogJSON{ID: e.ID, Bucket: e.Bucket}
	if !e.Start.IsZero() {
		out.Start = e.Start.UTC().Format(time.RFC3339Nano)
	}
	if e.End != nil {
		s := e.End.UTC().Format(time.RFC3339Nano)
		out.End = &s
	}
	return json.Marshal(out)
}

// timeLogFields holds the raw fields so a value of the wrong JSON type
// degrades to a zero field instead of failing the decode.
type timeLogFields struct {
	ID     json.RawMessage `json:"id"`
	Bucket Bucket          `json:"bucket"`
	Start  json.RawMessage `json:"start"`
	End    json.RawMessage `json:"end"`
}

// UnmarshalJSON is lenient: an unparseable start becomes the zero time and an
// unparseable end becomes nil, so one bad record never hides the rest of the
// collection. Aggregation skips such entries.
func (e *TimeLogEntry) UnmarshalJSON(data []byte) error {
	var in timeLogFields
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	e.ID = rawString(in.ID)
	e.Bucket = in.Bucket
	e.Start = parseTimestamp(rawString(in.Start))
	e.End = nil
	if end := parseTimestamp(rawString(in.End)); !end.IsZero() {
		e.End = &end
	}
	return nil
}

// rawString returns the string held in raw, or "" for any other JSON value.
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// Closed reports whether the entry has both a start and an end.
func (e TimeLogEntry) Closed() bool {
	return !e.Start.IsZero() && e.End != nil
}

// DurationSeconds returns round((end - start) / 1s). Open entries return 0.
func (e TimeLogEntry) DurationSeconds() int {
	if !e.Closed() {
		return 0
	}
	return int(math.Round(e.End.Sub(e.Start).Seconds()))
}

// ActiveTimer is the open tracker session, if any.
type ActiveTimer struct {
	Bucket    Bucket    `json:"bucket"`
	StartTime time.Time `json:"startTime"`
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
