package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xolan/truflow/internal/remote"
	"github.com/xolan/truflow/internal/store"
)

// ErrSyncDisabled is returned when no sync URL is configured.
var ErrSyncDisabled = errors.New("sync is disabled: set a sync URL first")

// SyncStatusDuration is how long frontends show a sync result.
const SyncStatusDuration = 2500 * time.Millisecond

// SyncResult summarises a completed push or pull.
type SyncResult struct {
	Projects int
	Tasks    int
	TimeLogs int
	At       time.Time
}

// SyncService pushes and pulls full snapshots to the configured endpoint.
type SyncService struct {
	store    *store.Store
	pomodoro *PomodoroService
	clock    *clock
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(st *store.Store, p *PomodoroService, clk *clock, timeout time.Duration, logger *slog.Logger) *SyncService {
	return &SyncService{store: st, pomodoro: p, clock: clk, timeout: timeout, logger: logger}
}

// Enabled reports whether a sync URL is set.
func (s *SyncService) Enabled() bool {
	return s.store.Settings().SyncURL != ""
}

func (s *SyncService) client() (*remote.Client, error) {
	url := s.store.Settings().SyncURL
	if url == "" {
		return nil, ErrSyncDisabled
	}
	return remote.NewClient(url, s.timeout, s.logger), nil
}

// Push uploads a snapshot of local data.
func (s *SyncService) Push(ctx context.Context) (SyncResult, error) {
	client, err := s.client()
	if err != nil {
		return SyncResult{}, err
	}

	now := s.clock.Now()
	snap := s.store.ExportAll(now)
	if err := client.Push(ctx, snap); err != nil {
		return SyncResult{}, fmt.Errorf("push failed: %w", err)
	}
	return resultOf(snap, now), nil
}

// Pull downloads the latest snapshot and overwrites the collections it
// carries, then restores the Pomodoro from storage.
func (s *SyncService) Pull(ctx context.Context) (SyncResult, error) {
	client, err := s.client()
	if err != nil {
		return SyncResult{}, err
	}

	snap, err := client.Pull(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("pull failed: %w", err)
	}
	if err := s.store.ImportAll(snap); err != nil {
		return SyncResult{}, fmt.Errorf("failed to import snapshot: %w", err)
	}

	s.pomodoro.Restore()
	return resultOf(snap, s.clock.Now()), nil
}

func resultOf(snap store.Snapshot, at time.Time) SyncResult {
	return SyncResult{
		Projects: len(snap.Projects),
		Tasks:    len(snap.Tasks),
		TimeLogs: len(snap.TimeLogs),
		At:       at,
	}
}
