// Package service provides the business logic layer for truflow.
// It wraps the document store, the Pomodoro machine, the aggregation engine
// and the backup client, providing one API for both CLI and TUI frontends.
package service

import (
	"log/slog"
	"os"
	"time"

	"github.com/xolan/truflow/internal/config"
	"github.com/xolan/truflow/internal/logging"
	"github.com/xolan/truflow/internal/pomodoro"
	"github.com/xolan/truflow/internal/store"
)

// Services holds all service instances used by the application
type Services struct {
	Store    *store.Store
	Tracker  *TrackerService
	Pomodoro *PomodoroService
	Report   *ReportService
	Kanban   *KanbanService
	Todo     *TodoService
	Settings *SettingsService
	Sync     *SyncService
	Data     *DataService
	Config   *ConfigService
	Logger   *slog.Logger

	clock    *clock
	closeLog func() error
}

// clock is shared by every service so tests can pin "now" in one place.
type clock struct {
	now func() time.Time
}

func (c *clock) Now() time.Time {
	return c.now()
}

// NewServices creates a new Services instance with default paths.
// verbose enables debug logging to the data directory log file.
func NewServices(verbose bool) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Open(dataDir, cfg.LogFile || verbose, verbose)
	if err != nil {
		// logging is optional; keep going without it
		logger = logging.Discard()
	}

	s := NewServicesWithPaths(dataDir, configPath, cfg, logger)
	s.closeLog = closeLog
	s.Pomodoro.AddNotifier(pomodoro.BellNotifier{W: os.Stdout, Logger: logger})

	if err := s.Store.InitDefaults(); err != nil {
		logger.Warn("failed to seed defaults", "error", err)
	}
	return s, nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing).
// The Pomodoro machine is restored from the store immediately.
func NewServicesWithPaths(dataDir, configPath string, cfg config.Config, logger *slog.Logger, opts ...pomodoro.Option) *Services {
	if logger == nil {
		logger = logging.Discard()
	}
	clk := &clock{now: time.Now}
	st := store.New(dataDir, logger)

	pomodoroService := NewPomodoroService(st, opts...)
	kanbanService := NewKanbanService(st, clk)
	trackerService := NewTrackerService(st, clk)
	reportService := NewReportService(st, clk)
	todoService := NewTodoService(st, clk)
	settingsService := NewSettingsService(st, pomodoroService)
	syncService := NewSyncService(st, pomodoroService, clk, time.Duration(cfg.SyncTimeoutSeconds)*time.Second, logger)
	dataService := NewDataService(st, pomodoroService, clk)
	configService := NewConfigService(configPath, cfg)

	return &Services{
		Store:    st,
		Tracker:  trackerService,
		Pomodoro: pomodoroService,
		Report:   reportService,
		Kanban:   kanbanService,
		Todo:     todoService,
		Settings: settingsService,
		Sync:     syncService,
		Data:     dataService,
		Config:   configService,
		Logger:   logger,
		clock:    clk,
		closeLog: func() error { return nil },
	}
}

// SetClock replaces the time source for every service.
func (s *Services) SetClock(now func() time.Time) {
	s.clock.now = now
}

// Now returns the current time from the shared clock.
func (s *Services) Now() time.Time {
	return s.clock.Now()
}

// Close stops the Pomodoro countdown and closes the log file.
func (s *Services) Close() error {
	s.Pomodoro.Close()
	return s.closeLog()
}
