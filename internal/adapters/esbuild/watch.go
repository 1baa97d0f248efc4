package esbuild

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/pack/internal/adapters/watcher"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

const (
	defaultWatchDelay = 100 * time.Millisecond
	eventBuffer       = 64
)

// watchHandle rebuilds a session whenever one of its source files changes.
type watchHandle struct {
	sess    *session
	watcher *watcher.Watcher
	events  chan domain.BundleEvent
	changes chan []string
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once

	mu  sync.Mutex
	ops map[string]ports.WatchOp
}

var _ ports.WatchHandle = (*watchHandle)(nil)

func startWatch(ctx context.Context, sess *session) (*watchHandle, error) {
	fsWatcher, err := watcher.NewWatcher()
	if err != nil {
		sess.Release()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &watchHandle{
		sess:    sess,
		watcher: fsWatcher,
		events:  make(chan domain.BundleEvent, eventBuffer),
		changes: make(chan []string, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
		ops:     make(map[string]ports.WatchOp),
	}

	if err := fsWatcher.Start(ctx); err != nil {
		cancel()
		sess.Release()
		return nil, err
	}

	go h.run(ctx)
	return h, nil
}

// Events returns the session events. The channel is closed when the session ends.
func (h *watchHandle) Events() <-chan domain.BundleEvent {
	return h.events
}

// Close ends the session and disposes the engine context. It is idempotent.
func (h *watchHandle) Close() error {
	var err error
	h.once.Do(func() {
		h.cancel()
		err = h.watcher.Stop()
		<-h.done
		h.sess.Release()
	})
	return err
}

func (h *watchHandle) run(ctx context.Context) {
	defer close(h.done)
	defer close(h.events)

	delay := h.sess.opts.WatchDelay
	if delay <= 0 {
		delay = defaultWatchDelay
	}
	debouncer := watcher.NewDebouncer(delay, func(paths []string) {
		select {
		case h.changes <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	go h.collect(ctx, debouncer)

	for {
		if !h.rebuild(ctx) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case paths := <-h.changes:
			for _, path := range paths {
				if !h.emit(ctx, domain.BundleEvent{Kind: domain.EventChange, Path: path, Change: h.change(path)}) {
					return
				}
			}
		}
	}
}

// rebuild runs one build and re-targets the watcher at its inputs.
func (h *watchHandle) rebuild(ctx context.Context) bool {
	if !h.emit(ctx, domain.BundleEvent{Kind: domain.EventStart}) {
		return false
	}

	result, err := h.sess.build(ctx)
	event := domain.BundleEvent{Kind: domain.EventEnd, Duration: result.Duration, Files: result.Files, Cache: h.sess}
	if err != nil {
		event = domain.BundleEvent{Kind: domain.EventError, Err: err}
	}
	if !h.emit(ctx, event) {
		return false
	}

	paths := h.sess.inputs
	if len(paths) == 0 {
		for _, entry := range h.sess.opts.Entries {
			paths = append(paths, filepath.Join(h.sess.opts.Cwd, entry.Path))
		}
	}
	if err := h.watcher.Watch(h.filter(paths)); err != nil {
		h.emit(ctx, domain.BundleEvent{Kind: domain.EventError, Err: err})
	}

	return h.emit(ctx, domain.BundleEvent{Kind: domain.EventIdle})
}

// collect feeds watcher events to the debouncer, remembering the last operation per path.
func (h *watchHandle) collect(ctx context.Context, debouncer *watcher.Debouncer) {
	for event := range h.watcher.Events() {
		if ctx.Err() != nil {
			return
		}
		h.mu.Lock()
		h.ops[event.Path] = event.Operation
		h.mu.Unlock()
		debouncer.Add(event.Path)
	}
}

func (h *watchHandle) change(path string) domain.ChangeKind {
	h.mu.Lock()
	defer h.mu.Unlock()

	op := h.ops[path]
	delete(h.ops, path)
	switch op {
	case ports.OpCreate:
		return domain.ChangeAdded
	case ports.OpRemove, ports.OpRename:
		return domain.ChangeRemoved
	default:
		return domain.ChangeUpdated
	}
}

func (h *watchHandle) filter(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if ignored(filepath.ToSlash(path), h.sess.opts.WatchIgnore) {
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func (h *watchHandle) emit(ctx context.Context, event domain.BundleEvent) bool {
	select {
	case h.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
