package domain

import (
	"path/filepath"
	"slices"
)

// WatchList is the set of absolute paths whose change triggers a full re-run.
type WatchList struct {
	paths map[string]struct{}
}

// NewWatchList returns a watch list holding the given paths.
func NewWatchList(paths ...string) *WatchList {
	w := &WatchList{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		w.Add(p)
	}
	return w
}

// Add inserts a path. Relative paths are cleaned but kept relative.
func (w *WatchList) Add(path string) {
	if path == "" {
		return
	}
	if w.paths == nil {
		w.paths = make(map[string]struct{})
	}
	w.paths[filepath.Clean(path)] = struct{}{}
}

// Contains reports whether path is watched.
func (w *WatchList) Contains(path string) bool {
	if w == nil {
		return false
	}
	_, ok := w.paths[filepath.Clean(path)]
	return ok
}

// Len returns the number of watched paths.
func (w *WatchList) Len() int {
	if w == nil {
		return 0
	}
	return len(w.paths)
}

// Paths returns the watched paths in sorted order.
func (w *WatchList) Paths() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.paths))
	for p := range w.paths {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
