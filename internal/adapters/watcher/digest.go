package watcher

import (
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pack/internal/core/domain"
)

// Digests remembers a content hash per file so that writes which leave a file
// unchanged can be told apart from real edits.
type Digests struct {
	mu      sync.Mutex
	entries map[string]uint64
}

// NewDigests creates an empty digest set.
func NewDigests() *Digests {
	return &Digests{entries: make(map[string]uint64)}
}

// Seed records the current content of every path. Missing files are recorded as absent.
func (d *Digests) Seed(paths []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.entries)
	for _, path := range paths {
		if sum, ok := digestFile(path); ok {
			d.entries[path] = sum
		}
	}
}

// Changed reports how path differs from its recorded content and records the new state.
// The flag is false when the content is unchanged. Directories always count as changed.
func (d *Digests) Changed(path string) (domain.ChangeKind, bool) {
	sum, exists := digestFile(path)

	d.mu.Lock()
	defer d.mu.Unlock()

	previous, known := d.entries[path]
	switch {
	case !exists && isDir(path):
		return domain.ChangeUpdated, true
	case !exists:
		delete(d.entries, path)
		return domain.ChangeRemoved, known
	case known && previous == sum:
		return "", false
	case known:
		d.entries[path] = sum
		return domain.ChangeUpdated, true
	default:
		d.entries[path] = sum
		return domain.ChangeAdded, true
	}
}

func digestFile(path string) (uint64, bool) {
	// #nosec G304 -- path comes from the watch list
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
