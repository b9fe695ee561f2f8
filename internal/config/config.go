package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xolan/truflow/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultSyncTimeoutSeconds bounds a single backup push or pull
	DefaultSyncTimeoutSeconds = 30
	// DefaultTheme is the bubbletint theme used when none is configured
	DefaultTheme = "dracula"
)

// Config represents the application configuration.
// Dashboard settings (durations, buckets, labels, sync URL) live in the
// document store so they travel with backups; this file only holds
// machine-local options.
type Config struct {
	// DataDir is where the document store keeps its JSON files. Empty means the config dir.
	DataDir string `toml:"data_dir"`
	// Theme is the bubbletint theme ID for the TUI
	Theme string `toml:"theme"`
	// SyncTimeoutSeconds limits each backup request
	SyncTimeoutSeconds int `toml:"sync_timeout_seconds"`
	// LogFile enables structured logging to <data_dir>/truflow.log
	LogFile bool `toml:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:            "",
		Theme:              DefaultTheme,
		SyncTimeoutSeconds: DefaultSyncTimeoutSeconds,
		LogFile:            false,
	}
}

// GetConfigPath returns the path to the config file.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Missing keys keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, returning defaults if it doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	return Load(path)
}

// Normalize trims string fields and fills in zero values.
func (c *Config) Normalize() {
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Theme = strings.TrimSpace(c.Theme)
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.SyncTimeoutSeconds == 0 {
		c.SyncTimeoutSeconds = DefaultSyncTimeoutSeconds
	}
}

// Validate checks that all values are usable.
func (c Config) Validate() error {
	if c.SyncTimeoutSeconds < 1 || c.SyncTimeoutSeconds > 600 {
		return fmt.Errorf("invalid sync_timeout_seconds %d: must be between 1 and 600", c.SyncTimeoutSeconds)
	}
	return nil
}

// ResolveDataDir returns the directory holding the document store.
// A leading ~ is expanded to the user's home directory.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir == "" {
		return osutil.AppDir()
	}

	dir, err := osutil.ExpandHome(c.DataDir)
	if err != nil {
		return "", err
	}
	return osutil.EnsureDir(dir)
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# truflow configuration file

# Directory for the JSON document store (defaults to the config directory)
# data_dir = "~/truflow-data"

# TUI theme (any bubbletint theme ID)
theme = "dracula"

# Timeout in seconds for backup push/pull requests
sync_timeout_seconds = 30

# Write structured logs to <data_dir>/truflow.log
log_file = false
`
}

// Encode writes cfg as TOML to path.
func Encode(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, _ = f.WriteString("# truflow configuration file\n\n")
	return toml.NewEncoder(f).Encode(cfg)
}
