package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/engine/resolver"
)

// watchList returns the absolute paths whose change re-runs the build.
func watchList(res resolver.Resolution, envFiles []string) []string {
	cfg := res.Config
	var paths []string

	if cfg.WatchList.PackageJSON {
		paths = append(paths, domain.PackagePath(cfg.Cwd))
	}
	if cfg.WatchList.TSConfig {
		if res.Types.Path != "" {
			paths = append(paths, res.Types.Path)
		} else {
			paths = append(paths, domain.TypeConfigPath(cfg.Cwd))
		}
	}
	if cfg.WatchList.Config {
		if cfg.ConfigFile != "" {
			paths = append(paths, cfg.ConfigFile)
		} else {
			// Any of them appearing starts a re-run.
			for _, name := range domain.ConfigFileNames {
				paths = append(paths, filepath.Join(cfg.Cwd, name))
			}
		}
	}
	if cfg.WatchList.DotEnv {
		paths = append(paths, envFiles...)
	}
	for _, pkg := range cfg.WatchList.Packages {
		paths = append(paths, packageFiles(cfg.Cwd, pkg)...)
	}

	slices.Sort(paths)
	return slices.Compact(paths)
}

// packageFiles lists the files of the installed packages matching pkg,
// resolved through symlinks. Files inside cwd are left out.
func packageFiles(cwd string, pkg domain.PackageWatch) []string {
	project := cwd
	if real, err := filepath.EvalSymlinks(cwd); err == nil {
		project = real
	}
	root := filepath.Join(cwd, domain.NodeModulesDir)
	matches, err := doublestar.Glob(filepath.Join(root, filepath.FromSlash(pkg.Name)))
	if err != nil {
		return nil
	}

	var files []string
	for _, match := range matches {
		real, err := filepath.EvalSymlinks(match)
		if err != nil || inside(project, real) {
			continue
		}
		info, err := os.Stat(real)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if keep(filepath.Base(real), pkg) {
				files = append(files, real)
			}
			continue
		}
		_ = filepath.WalkDir(real, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if d.IsDir() {
				if path != real && d.Name() == domain.NodeModulesDir {
					return fs.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(real, path)
			if err == nil && keep(filepath.ToSlash(rel), pkg) {
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}

// keep applies the include and exclude globs of pkg to a package-relative path.
func keep(rel string, pkg domain.PackageWatch) bool {
	if len(pkg.Include) > 0 && !matchAny(pkg.Include, rel) {
		return false
	}
	return !matchAny(pkg.Exclude, rel)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func inside(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
