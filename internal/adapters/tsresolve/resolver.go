// Package tsresolve resolves path aliases the way the TypeScript compiler does.
package tsresolve

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var _ ports.ModuleResolver = (*Resolver)(nil)

// fileExtensions are tried in order when a candidate has no matching file.
var fileExtensions = []string{".ts", ".tsx", ".d.ts", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// jsToTS maps emitted extensions to the sources they are compiled from.
var jsToTS = map[string][]string{
	".js":  {".ts", ".tsx"},
	".jsx": {".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

// Resolver implements ports.ModuleResolver using baseUrl and paths substitution.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Matches reports whether specifier matches a declared paths pattern.
func (r *Resolver) Matches(specifier string, types domain.TypeMetadata) bool {
	_, _, ok := bestMatch(specifier, types.Paths)
	return ok
}

// Resolve substitutes specifier into the targets of the best matching pattern and
// returns the first candidate that exists. Declaration files are never returned.
// The importer does not affect paths resolution, which is relative to baseUrl.
func (r *Resolver) Resolve(specifier, _ string, types domain.TypeMetadata) (string, bool) {
	pattern, capture, ok := bestMatch(specifier, types.Paths)
	if !ok {
		return "", false
	}

	base := types.BaseURL
	if base == "" {
		base = types.Dir
	}

	for _, target := range types.Paths[pattern] {
		candidate := strings.Replace(target, "*", capture, 1)
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(base, filepath.FromSlash(candidate))
		}
		resolved, found := lookup(candidate)
		if !found {
			continue
		}
		if strings.HasSuffix(resolved, ".d.ts") {
			return "", false
		}
		if real, err := filepath.EvalSymlinks(resolved); err == nil {
			resolved = real
		}
		return resolved, true
	}
	return "", false
}

// bestMatch returns the pattern with the longest prefix before its wildcard that
// matches specifier, along with the text the wildcard matched. A wildcard may
// match the empty string.
func bestMatch(specifier string, paths map[string][]string) (string, string, bool) {
	best, capture := "", ""
	bestPrefix := -1
	for pattern := range paths {
		prefix, suffix, wildcard := strings.Cut(pattern, "*")
		if !wildcard {
			if pattern == specifier && len(pattern) > bestPrefix {
				best, capture, bestPrefix = pattern, "", len(pattern)
			}
			continue
		}
		if len(specifier) < len(prefix)+len(suffix) {
			continue
		}
		if !strings.HasPrefix(specifier, prefix) || !strings.HasSuffix(specifier, suffix) {
			continue
		}
		if len(prefix) > bestPrefix || (len(prefix) == bestPrefix && pattern < best) {
			best = pattern
			capture = specifier[len(prefix) : len(specifier)-len(suffix)]
			bestPrefix = len(prefix)
		}
	}
	return best, capture, bestPrefix >= 0
}

// lookup loads candidate as a file, then as a directory with an index file.
func lookup(candidate string) (string, bool) {
	if isFile(candidate) {
		return candidate, true
	}

	ext := filepath.Ext(candidate)
	for _, sourceExt := range jsToTS[ext] {
		if path := strings.TrimSuffix(candidate, ext) + sourceExt; isFile(path) {
			return path, true
		}
	}

	for _, ext := range fileExtensions {
		if isFile(candidate + ext) {
			return candidate + ext, true
		}
	}

	for _, ext := range fileExtensions {
		index := filepath.Join(candidate, "index"+ext)
		if isFile(index) {
			return index, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
