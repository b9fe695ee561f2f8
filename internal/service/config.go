package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xolan/truflow/internal/config"
)

// ConfigService owns the TOML file behind config.Config. Edits made from the
// dashboard go through Update so the file and the in-memory copy agree.
type ConfigService struct {
	path string
	cfg  config.Config
}

func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

func (s *ConfigService) Get() config.Config { return s.cfg }

func (s *ConfigService) Path() string { return s.path }

// Exists reports whether the config file is present on disk.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Update normalizes and validates cfg, then persists it.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Encode(s.path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	s.cfg = cfg
	return nil
}

// Init writes the commented sample file. It refuses to overwrite.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if _, err := f.WriteString(config.GenerateSampleConfig()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
