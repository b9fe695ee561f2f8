package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xolan/truflow/internal/store"
)

// DataService exports, imports and repairs the document store.
type DataService struct {
	store    *store.Store
	pomodoro *PomodoroService
	clock    *clock
}

// NewDataService creates a new DataService
func NewDataService(st *store.Store, p *PomodoroService, clk *clock) *DataService {
	return &DataService{store: st, pomodoro: p, clock: clk}
}

// Export writes an indented snapshot of every collection to w.
func (s *DataService) Export(w io.Writer) (store.Snapshot, error) {
	snap := s.store.ExportAll(s.clock.Now())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return snap, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return snap, nil
}

// Import reads a snapshot from r and overwrites the collections it carries.
func (s *DataService) Import(r io.Reader) (store.Snapshot, error) {
	var snap store.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, fmt.Errorf("invalid snapshot: %w", err)
	}
	if err := s.store.ImportAll(snap); err != nil {
		return snap, fmt.Errorf("failed to import snapshot: %w", err)
	}
	s.pomodoro.Restore()
	return snap, nil
}

// Clear removes every document and reseeds the defaults.
func (s *DataService) Clear() error {
	if err := s.store.ClearAll(); err != nil {
		return err
	}
	if err := s.store.InitDefaults(); err != nil {
		return err
	}
	s.pomodoro.Reset()
	return nil
}

// Validate reports the health of every document.
func (s *DataService) Validate() []store.KeyHealth {
	return s.store.Validate()
}

// Backups lists the rotated backups of key, newest first.
func (s *DataService) Backups(key string) ([]store.BackupInfo, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return s.store.ListBackups(key), nil
}

// Restore replaces key with backup n.
func (s *DataService) Restore(key string, n int) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.store.RestoreBackup(key, n); err != nil {
		return err
	}
	if key == store.KeyPomodoroState || key == store.KeySettings {
		s.pomodoro.Restore()
	}
	return nil
}

func checkKey(key string) error {
	for _, k := range store.Keys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown document %q (use one of %v)", key, store.Keys)
}
