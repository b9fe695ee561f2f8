// Package store is the key-value JSON document store. Each key lives in its
// own file, truflow_<key>.json, under the data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xolan/truflow/internal/logging"
)

// FilePrefix namespaces every document file.
const FilePrefix = "truflow_"

// Document keys.
const (
	KeyProjects      = "projects"
	KeyTasks         = "tasks"
	KeyTimeLogs      = "timeLogs"
	KeySettings      = "settings"
	KeyActiveTimer   = "activeTimer"
	KeyPomodoroState = "pomodoroState"
)

// Keys lists every document the store manages.
var Keys = []string{KeyProjects, KeyTasks, KeyTimeLogs, KeySettings, KeyActiveTimer, KeyPomodoroState}

// Store reads and writes JSON documents in a directory.
// Writes are last-writer-wins with no cross-process locking.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New returns a store rooted at dir. A nil logger discards log output.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{dir: dir, logger: logger.With("component", "store")}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, FilePrefix+key+".json")
}

// GetItem decodes the document at key into out. It returns false when the
// document is missing, unreadable, corrupted or JSON null; failures other
// than a missing file are logged.
func (s *Store) GetItem(key string, out any) bool {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("read failed", "key", key, "error", err)
		}
		return false
	}
	if len(data) == 0 || string(data) == "null" {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("parse failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetItem encodes v and writes it to key using a temp file and rename.
func (s *Store) SetItem(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode failed", "key", key, "error", err)
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := writeFileAtomic(s.Path(key), data); err != nil {
		s.logger.Error("write failed", "key", key, "error", err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.logger.Debug("saved", "key", key, "bytes", len(data))
	return nil
}

// RemoveItem deletes the document at key. Removing a missing key is not an error.
func (s *Store) RemoveItem(key string) error {
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error("remove failed", "key", key, "error", err)
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Has reports whether a document exists for key.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	// Atomic rename
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}
