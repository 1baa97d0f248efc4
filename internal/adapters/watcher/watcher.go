package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that are never watched recursively.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher watches a set of files, and directory trees, using fsnotify.
//
// fsnotify watches directories, so each file is watched through its parent
// and events for unrelated siblings are dropped.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent

	mu    sync.RWMutex
	files map[string]struct{}
	trees []string
	dirs  map[string]struct{}
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	return &Watcher{
		fsWatcher: watcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		files:     make(map[string]struct{}),
		dirs:      make(map[string]struct{}),
	}, nil
}

// Start begins delivering events until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	go w.processEvents(ctx)
	return nil
}

// Watch replaces the watched set. Existing directories are watched as whole trees.
func (w *Watcher) Watch(paths []string) error {
	files := make(map[string]struct{}, len(paths))
	var trees []string
	dirs := make(map[string]struct{})

	for _, path := range paths {
		path = filepath.Clean(path)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			trees = append(trees, path)
			for dir := range w.watchRecursively(path) {
				dirs[dir] = struct{}{}
			}
			continue
		}
		files[path] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.dirs {
		if _, keep := dirs[dir]; !keep {
			_ = w.fsWatcher.Remove(dir)
		}
	}
	for dir := range dirs {
		if _, known := w.dirs[dir]; known {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			// Parents of files that do not exist yet may be missing too.
			if errors.Is(err, fs.ErrNotExist) {
				delete(dirs, dir)
				continue
			}
			err = zerr.Wrap(err, domain.ErrWatcherFailed.Error())
			return zerr.With(err, "path", dir)
		}
	}

	w.files = files
	w.trees = trees
	w.dirs = dirs
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if d.IsDir() {
				if path != root && shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// relevant reports whether path is a watched file or lies in a watched tree.
func (w *Watcher) relevant(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, ok := w.files[path]; ok {
		return true
	}
	for _, tree := range w.trees {
		if path == tree || strings.HasPrefix(path, tree+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			path := filepath.Clean(event.Name)
			if !w.relevant(path) {
				continue
			}

			watchEvent := convertEvent(path, event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			if watchEvent.Operation == ports.OpCreate {
				w.followNewDirectory(path)
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Overflow and similar errors only lose events; the next change re-triggers.
		}
	}
}

// followNewDirectory adds a directory created inside a watched tree.
func (w *Watcher) followNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || shouldSkipDirectories[info.Name()] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for dir := range w.watchRecursively(path) {
		if err := w.fsWatcher.Add(dir); err == nil {
			w.dirs[dir] = struct{}{}
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(path string, event fsnotify.Event) *ports.WatchEvent {
	switch {
	case event.Op.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite}
	case event.Op.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate}
	case event.Op.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove}
	case event.Op.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename}
	default:
		return nil
	}
}
