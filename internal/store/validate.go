package store

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/xolan/truflow/internal/entry"
)

// KeyHealth is the state of one document on disk.
type KeyHealth struct {
	Key     string
	Path    string
	Present bool
	Valid   bool
	Items   int    // element count for collections, -1 otherwise
	Skipped int    // time logs that aggregation will ignore
	Error   string // parse or read error when not valid
}

// Validate inspects every document and reports its health.
func (s *Store) Validate() []KeyHealth {
	report := make([]KeyHealth, 0, len(Keys))
	for _, key := range Keys {
		report = append(report, s.validateKey(key))
	}
	return report
}

func (s *Store) validateKey(key string) KeyHealth {
	h := KeyHealth{Key: key, Path: s.Path(key), Items: -1}

	data, err := os.ReadFile(h.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.Present = true
			h.Error = err.Error()
		}
		return h
	}
	h.Present = true

	var decodeErr error
	switch key {
	case KeyProjects:
		var v []entry.Project
		decodeErr = json.Unmarshal(data, &v)
		h.Items = len(v)
	case KeyTasks:
		var v []entry.Task
		decodeErr = json.Unmarshal(data, &v)
		h.Items = len(v)
	case KeyTimeLogs:
		var raw []json.RawMessage
		if decodeErr = json.Unmarshal(data, &raw); decodeErr == nil {
			logs := s.TimeLogs()
			h.Items = len(raw)
			h.Skipped = len(raw) - len(logs)
			for _, log := range logs {
				if !log.Closed() || log.DurationSeconds() <= 0 {
					h.Skipped++
				}
			}
		}
	case KeySettings:
		var v entry.Settings
		if decodeErr = json.Unmarshal(data, &v); decodeErr == nil {
			decodeErr = v.Validate()
		}
	case KeyActiveTimer:
		var v entry.ActiveTimer
		decodeErr = json.Unmarshal(data, &v)
	case KeyPomodoroState:
		var v map[string]json.RawMessage
		if decodeErr = json.Unmarshal(data, &v); decodeErr == nil {
			if _, ok := s.PomodoroState(); !ok {
				decodeErr = errors.New("remaining must be a non-negative number and mode work or break")
			}
		}
	}

	if decodeErr != nil {
		h.Error = decodeErr.Error()
		return h
	}
	h.Valid = true
	return h
}
