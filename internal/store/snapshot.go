package store

import (
	"errors"
	"time"

	"github.com/xolan/truflow/internal/entry"
)

// Snapshot is the backup document exchanged with the sync endpoint.
// On import a nil field means "not present" and leaves local data alone.
type Snapshot struct {
	Projects   []entry.Project      `json:"projects"`
	Tasks      []entry.Task         `json:"tasks"`
	TimeLogs   []entry.TimeLogEntry `json:"timeLogs"`
	Settings   *entry.Settings      `json:"settings"`
	ExportedAt time.Time            `json:"exportedAt"`
}

// ExportAll captures the four user collections.
func (s *Store) ExportAll(now time.Time) Snapshot {
	settings := s.Settings()
	return Snapshot{
		Projects:   s.Projects(),
		Tasks:      s.Tasks(),
		TimeLogs:   s.TimeLogs(),
		Settings:   &settings,
		ExportedAt: now.UTC(),
	}
}

// ImportAll overwrites each collection present in snap. There is no merge.
// The previous file of every overwritten key is rotated into its backups
// first. Every present collection is attempted; the joined error is returned.
func (s *Store) ImportAll(snap Snapshot) error {
	var errs []error
	write := func(key string, v any) {
		if err := s.CreateBackup(key); err != nil {
			s.logger.Warn("backup before import failed", "key", key, "error", err)
		}
		errs = append(errs, s.SetItem(key, v))
	}

	if snap.Projects != nil {
		write(KeyProjects, snap.Projects)
	}
	if snap.Tasks != nil {
		write(KeyTasks, snap.Tasks)
	}
	if snap.TimeLogs != nil {
		write(KeyTimeLogs, snap.TimeLogs)
	}
	if snap.Settings != nil {
		write(KeySettings, snap.Settings)
	}
	return errors.Join(errs...)
}

// ClearAll removes every document, backing each one up first.
func (s *Store) ClearAll() error {
	var errs []error
	for _, key := range Keys {
		if err := s.CreateBackup(key); err != nil {
			s.logger.Warn("backup before clear failed", "key", key, "error", err)
		}
		errs = append(errs, s.RemoveItem(key))
	}
	return errors.Join(errs...)
}

// InitDefaults seeds settings and empty collections on first run.
func (s *Store) InitDefaults() error {
	var errs []error
	if !s.Has(KeySettings) {
		errs = append(errs, s.SaveSettings(entry.DefaultSettings()))
	}
	if !s.Has(KeyProjects) {
		errs = append(errs, s.SaveProjects(nil))
	}
	if !s.Has(KeyTasks) {
		errs = append(errs, s.SaveTasks(nil))
	}
	if !s.Has(KeyTimeLogs) {
		errs = append(errs, s.SaveTimeLogs(nil))
	}
	return errors.Join(errs...)
}
