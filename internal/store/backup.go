package store

import (
	"errors"
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep per key
	MaxBackupCount = 3
)

// BackupInfo describes one backup file.
type BackupInfo struct {
	Key    string
	Number int // 1 is the most recent
	Path   string
}

// BackupPath returns the path of backup n for key, e.g. truflow_tasks.json.bak.1.
func (s *Store) BackupPath(key string, n int) string {
	return fmt.Sprintf("%s%s.%d", s.Path(key), BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3, dropping the oldest.
func (s *Store) rotateBackups(key string) error {
	if err := os.Remove(s.BackupPath(key, MaxBackupCount)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(s.BackupPath(key, i), s.BackupPath(key, i+1)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the current document for key to .bak.1 after rotating
// older backups. A missing document is not an error.
func (s *Store) CreateBackup(key string) error {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := s.rotateBackups(key); err != nil {
		return err
	}
	return os.WriteFile(s.BackupPath(key, 1), data, 0644)
}

// ListBackups returns the existing backups for key, most recent first.
func (s *Store) ListBackups(key string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		path := s.BackupPath(key, i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, BackupInfo{Key: key, Number: i, Path: path})
		}
	}
	return backups
}

// RestoreBackup replaces the document for key with backup n. The current
// document is backed up first, so a restore can itself be undone.
func (s *Store) RestoreBackup(key string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	data, err := os.ReadFile(s.BackupPath(key, n))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup %d of %s does not exist", n, key)
		}
		return err
	}

	if err := s.CreateBackup(key); err != nil {
		return fmt.Errorf("failed to back up current %s: %w", key, err)
	}
	if err := writeFileAtomic(s.Path(key), data); err != nil {
		return fmt.Errorf("failed to restore %s: %w", key, err)
	}
	s.logger.Info("restored backup", "key", key, "number", n)
	return nil
}
