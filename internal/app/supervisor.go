package app

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/pack/internal/adapters/watcher" //nolint:depguard // Debouncing and digests are adapter helpers
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// RerunFunc re-runs the build and returns the next watch list.
type RerunFunc func(ctx context.Context) ([]string, error)

// Supervisor re-runs the build whenever a file of the watch list changes.
type Supervisor struct {
	watcher  ports.Watcher
	logger   ports.Logger
	digests  *watcher.Digests
	cwd      string
	debounce time.Duration
	rerun    RerunFunc

	// mu serializes re-runs.
	mu sync.Mutex
}

// NewSupervisor creates a new Supervisor.
func NewSupervisor(w ports.Watcher, logger ports.Logger, cwd string, debounce time.Duration, rerun RerunFunc) *Supervisor {
	return &Supervisor{
		watcher:  w,
		logger:   logger,
		digests:  watcher.NewDigests(),
		cwd:      cwd,
		debounce: debounce,
		rerun:    rerun,
	}
}

// Run watches paths until ctx is done. Re-run failures are logged and the
// previous watch list is kept.
func (s *Supervisor) Run(ctx context.Context, paths []string) error {
	if err := s.watcher.Start(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	defer func() { _ = s.watcher.Stop() }()

	if err := s.retarget(paths); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(s.debounce, func(changed []string) {
		s.handle(ctx, changed)
	})

	for event := range s.watcher.Events() {
		if ctx.Err() != nil {
			break
		}
		debouncer.Add(event.Path)
	}
	<-ctx.Done()

	debouncer.Stop()
	// Wait for a re-run in flight.
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil
}

func (s *Supervisor) handle(ctx context.Context, changed []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	relevant := false
	for _, path := range changed {
		kind, ok := s.digests.Changed(path)
		if !ok {
			continue
		}
		relevant = true
		s.logger.Info(s.display(path) + " " + string(kind))
	}
	if !relevant {
		return
	}

	paths, err := s.rerun(ctx)
	if err != nil {
		s.logger.Error(err)
		return
	}
	if err := s.retarget(paths); err != nil {
		s.logger.Error(err)
	}
}

func (s *Supervisor) retarget(paths []string) error {
	if err := s.watcher.Watch(paths); err != nil {
		return err
	}
	s.digests.Seed(paths)
	return nil
}

// display returns path relative to the project root when it lies inside it.
func (s *Supervisor) display(path string) string {
	if !inside(s.cwd, path) {
		return path
	}
	rel, err := filepath.Rel(s.cwd, path)
	if err != nil {
		return path
	}
	return rel
}
