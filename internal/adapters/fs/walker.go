// Package fs provides file system adapters for cleaning and copying build files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root with its slash-separated path relative
// to root. Files are kept when they match one of include (all files when empty)
// and none of exclude. VCS metadata directories are never entered.
func (w *Walker) WalkFiles(root string, include, exclude []string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if name := d.Name(); path != root && (name == ".git" || name == ".jj") {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil //nolint:nilerr // paths under root are always relative to it
			}
			rel = filepath.ToSlash(rel)
			if !Selected(rel, include, exclude) {
				return nil
			}

			if !yield(path, rel) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Selected reports whether rel matches an include pattern and no exclude pattern.
func Selected(rel string, include, exclude []string) bool {
	if len(include) > 0 && !matchAny(include, rel) {
		return false
	}
	return !matchAny(exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
