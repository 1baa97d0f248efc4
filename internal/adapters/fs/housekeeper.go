package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Housekeeper = (*Housekeeper)(nil)

// Housekeeper implements ports.Housekeeper on the local file system.
type Housekeeper struct {
	walker *Walker
}

// NewHousekeeper creates a new Housekeeper.
func NewHousekeeper(walker *Walker) *Housekeeper {
	return &Housekeeper{walker: walker}
}

// Clean removes every spec target. Specs with include or exclude patterns only
// remove the matching files below their target.
func (h *Housekeeper) Clean(ctx context.Context, cwd string, specs []domain.CleanSpec) error {
	var errs []error
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.clean(cwd, spec); err != nil {
			errs = append(errs, zerr.With(err, "target", spec.Target))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.Wrap(err, domain.ErrCleanFailed.Error())
	}
	return nil
}

func (h *Housekeeper) clean(cwd string, spec domain.CleanSpec) error {
	target := absPath(cwd, spec.Target)
	if target == filepath.Clean(cwd) {
		return zerr.New("refusing to clean the project root")
	}

	if len(spec.Include) == 0 && len(spec.Exclude) == 0 {
		return os.RemoveAll(target)
	}

	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	var files []string
	for path := range h.walker.WalkFiles(target, spec.Include, spec.Exclude) {
		files = append(files, path)
	}
	for _, path := range files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Copy copies the files selected by every spec into the spec destination,
// keeping their path relative to the source directory or glob base.
func (h *Housekeeper) Copy(ctx context.Context, cwd string, specs []domain.CopySpec) error {
	var errs []error
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.copySpec(cwd, spec); err != nil {
			errs = append(errs, zerr.With(err, "from", spec.From))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.Wrap(err, domain.ErrCopyFailed.Error())
	}
	return nil
}

func (h *Housekeeper) copySpec(cwd string, spec domain.CopySpec) error {
	from := absPath(cwd, spec.From)
	to := absPath(cwd, spec.To)

	info, err := os.Stat(from)
	switch {
	case err == nil && info.IsDir():
		for path, rel := range h.walker.WalkFiles(from, spec.Include, spec.Exclude) {
			if err := copyFile(path, filepath.Join(to, filepath.FromSlash(rel))); err != nil {
				return err
			}
		}
		return nil
	case err == nil:
		return copyFile(from, filepath.Join(to, filepath.Base(from)))
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	matches, err := doublestar.Glob(from)
	if err != nil {
		return err
	}
	base := globBase(from)
	for _, match := range matches {
		if info, err := os.Stat(match); err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(base, match)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !Selected(rel, spec.Include, spec.Exclude) {
			continue
		}
		if err := copyFile(match, filepath.Join(to, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}
	return nil
}

// globBase returns the directory part of pattern before the first wildcard.
func globBase(pattern string) string {
	idx := strings.IndexAny(pattern, "*?[{")
	if idx < 0 {
		return filepath.Dir(pattern)
	}
	return filepath.Dir(pattern[:idx+1])
}

func copyFile(src, dst string) error {
	// #nosec G304 -- src is selected by the project's copy specs
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // dst is below the output directory
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func absPath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
