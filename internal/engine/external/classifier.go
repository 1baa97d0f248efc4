// Package external decides which imports are bundled and which stay runtime dependencies.
package external

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// Classifier is a pure predicate over (specifier, importer). It is safe for concurrent use.
type Classifier struct {
	node     bool
	bundled  *Matcher
	external *Matcher
}

// New creates the classifier of the code formats.
func New(cfg *domain.ResolvedConfig) (*Classifier, error) {
	return newClassifier(cfg.Target, cfg.NoExternal, cfg.External, cfg)
}

// NewDeclaration creates the classifier of the declaration format. Its own
// lists override the bundle-level ones when set.
func NewDeclaration(cfg *domain.ResolvedConfig) (*Classifier, error) {
	noExternal := cfg.NoExternal
	if cfg.Output.DTS.NoExternal != nil {
		noExternal = cfg.Output.DTS.NoExternal
	}
	external := cfg.External
	if cfg.Output.DTS.External != nil {
		external = cfg.Output.DTS.External
	}
	return newClassifier(cfg.Target, noExternal, external, cfg)
}

func newClassifier(target domain.Target, noExternal, external []string, cfg *domain.ResolvedConfig) (*Classifier, error) {
	allow := make([]string, 0, len(noExternal)+len(cfg.ExternalDeps)+len(cfg.ExternalDevDeps)+len(cfg.ExternalPeerDeps))
	allow = append(allow, noExternal...)
	allow = append(allow, cfg.ExternalDeps...)
	allow = append(allow, cfg.ExternalDevDeps...)
	allow = append(allow, cfg.ExternalPeerDeps...)

	bundled, err := NewMatcher(allow)
	if err != nil {
		return nil, err
	}
	ext, err := NewMatcher(external)
	if err != nil {
		return nil, err
	}
	return &Classifier{node: target == domain.TargetNode, bundled: bundled, external: ext}, nil
}

// IsExternal reports whether specifier, imported from importer, is left out of the bundle.
func (c *Classifier) IsExternal(specifier, importer string) bool {
	switch {
	case importer == "":
		return false
	case filepath.IsAbs(specifier) || strings.HasPrefix(specifier, "."):
		return false
	}

	name := domain.PackageName(specifier)
	if name == domain.ToolName {
		return false
	}
	if c.node && domain.IsBuiltin(specifier) {
		return true
	}
	if c.bundled.Match(name) {
		return false
	}
	return c.external.Match(name)
}

// Matcher matches package names against exact names, doublestar globs and /regexp/ patterns.
type Matcher struct {
	exact   map[string]struct{}
	globs   []string
	regexps []*regexp.Regexp
}

// NewMatcher compiles patterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{exact: make(map[string]struct{})}
	for _, pattern := range patterns {
		if expr, ok := domain.RegexpBody(pattern); ok {
			re, err := regexp.Compile(expr)
			if err != nil {
				err = zerr.Wrap(err, domain.ErrInvalidPattern.Error())
				return nil, zerr.With(err, "pattern", pattern)
			}
			m.regexps = append(m.regexps, re)
			continue
		}
		if !strings.ContainsAny(pattern, "*?[{") {
			m.exact[pattern] = struct{}{}
			continue
		}
		if _, err := doublestar.Match(pattern, ""); err != nil {
			err = zerr.Wrap(err, domain.ErrInvalidPattern.Error())
			return nil, zerr.With(err, "pattern", pattern)
		}
		m.globs = append(m.globs, pattern)
	}
	return m, nil
}

// Match reports whether name matches any pattern.
func (m *Matcher) Match(name string) bool {
	if _, ok := m.exact[name]; ok {
		return true
	}
	for _, glob := range m.globs {
		if ok, _ := doublestar.Match(glob, name); ok {
			return true
		}
	}
	for _, re := range m.regexps {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
