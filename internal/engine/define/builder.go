// Package define computes the compile-time constants substituted into every build.
package define

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// modeType is the stub type of the mode constants.
const modeType = `"development" | "production"`

const (
	envNodeEnv = "NODE_ENV"
	envVersion = "VERSION"
)

// Result is the outcome of one table build.
type Result struct {
	Table *domain.DefineTable
	// EnvFiles are the dotenv paths considered, empty unless the watch list includes them.
	EnvFiles []string
	// Problems are recoverable failures. The caller decides whether they are fatal.
	Problems []error
}

// Builder builds the define table of a resolved configuration.
type Builder struct {
	env    ports.EnvLoader
	logger ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(env ports.EnvLoader, logger ports.Logger) *Builder {
	return &Builder{env: env, logger: logger}
}

// Build computes the table. The returned error is set only for failures that
// leave no usable table; everything else is reported in Result.Problems.
func (b *Builder) Build(cfg *domain.ResolvedConfig, pkg domain.PackageMetadata) (Result, error) {
	var res Result
	globals := &entries{}
	env := &entries{}

	if err := globals.setAll(cfg.Define); err != nil {
		return res, err
	}
	if err := env.setAll(cfg.DefineEnv); err != nil {
		return res, err
	}

	if cfg.DotEnv.Enabled {
		paths := dotEnvPaths(cfg)
		for _, path := range paths {
			values, _, err := b.env.Load([]string{path})
			if err != nil {
				res.Problems = append(res.Problems, domain.Fail(domain.KindEnv, err))
				continue
			}
			for _, key := range sortedKeys(values) {
				if err := env.set(key, values[key], ""); err != nil {
					return res, err
				}
			}
		}
		if cfg.WatchList.DotEnv {
			res.EnvFiles = paths
		}
	}

	if err := b.runtime(cfg, pkg, globals, env, &res); err != nil {
		return res, err
	}

	res.Table = &domain.DefineTable{Globals: globals.list, Env: env.list}
	for _, entry := range res.Table.Globals {
		b.logger.Debug(entry.Key + " => " + entry.Literal)
	}
	for _, entry := range res.Table.Env {
		b.logger.Debug("ENV " + entry.Key + " => " + entry.Literal)
	}

	if cfg.CreateEnv {
		if err := WriteStub(domain.TypeStubPath(cfg.Cwd), res.Table); err != nil {
			return res, err
		}
	}
	return res, nil
}

// runtime adds the constants selected by the defineRuntime toggles.
func (b *Builder) runtime(cfg *domain.ResolvedConfig, pkg domain.PackageMetadata, globals, env *entries, res *Result) error {
	if cfg.DefineRuntime.Mode {
		dev := cfg.Mode == domain.ModeDevelopment
		if err := env.set(envNodeEnv, string(cfg.Mode), modeType); err != nil {
			return err
		}
		if err := globals.set("__MODE__", string(cfg.Mode), modeType); err != nil {
			return err
		}
		if err := globals.set("__DEV__", dev, ""); err != nil {
			return err
		}
		if err := globals.set("__PROD__", !dev, ""); err != nil {
			return err
		}
	}

	if cfg.DefineRuntime.Target {
		node := cfg.Target == domain.TargetNode
		if err := globals.set("__NODE__", node, ""); err != nil {
			return err
		}
		if err := globals.set("__BROWSER__", !node, ""); err != nil {
			return err
		}
	}

	if cfg.DefineRuntime.Version {
		if pkg.Version == "" {
			err := zerr.With(domain.ErrMissingVersion, "path", domain.PackagePath(cfg.Cwd))
			res.Problems = append(res.Problems, domain.Fail(domain.KindConfig, err))
			return nil
		}
		if err := globals.set("__VERSION__", pkg.Version, ""); err != nil {
			return err
		}
		if err := env.set(envVersion, pkg.Version, ""); err != nil {
			return err
		}
	}
	return nil
}

// dotEnvPaths returns the absolute dotenv paths to read, lowest precedence first.
func dotEnvPaths(cfg *domain.ResolvedConfig) []string {
	names := cfg.DotEnv.Files
	if names == nil {
		names = []string{".env", ".env.local"}
		if cfg.Mode == domain.ModeDevelopment {
			names = append(names, ".env.dev", ".env.dev.local", ".env.development", ".env.development.local")
		} else {
			names = append(names, ".env.prod", ".env.prod.local", ".env.production", ".env.production.local")
		}
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		if !filepath.IsAbs(name) {
			name = filepath.Join(cfg.Cwd, name)
		}
		paths = append(paths, name)
	}
	return paths
}

// entries is an insertion-ordered list of define entries. Setting an existing
// key replaces its value in place.
type entries struct {
	list []domain.DefineEntry
}

func (e *entries) setAll(values map[string]any) error {
	for _, key := range sortedKeys(values) {
		if err := e.set(key, values[key], ""); err != nil {
			return err
		}
	}
	return nil
}

func (e *entries) set(key string, value any, typ string) error {
	literal, err := json.Marshal(value)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrDefineEncodeFailed.Error())
		return zerr.With(err, "key", key)
	}
	if typ == "" {
		typ = literalType(literal)
	}
	entry := domain.DefineEntry{Key: key, Literal: string(literal), Type: typ}

	if i := slices.IndexFunc(e.list, func(d domain.DefineEntry) bool { return d.Key == key }); i >= 0 {
		e.list[i] = entry
		return nil
	}
	e.list = append(e.list, entry)
	return nil
}

// literalType returns the runtime type of a JSON literal.
func literalType(literal []byte) string {
	switch literal[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n', '{', '[':
		return "object"
	default:
		return "number"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, strings.Compare)
	return keys
}
