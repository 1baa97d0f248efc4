// Package config provides the configuration loader for pack.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Condition names a conditional block of the config file.
type Condition string

const (
	WhenDevelopment Condition = "development"
	WhenProduction  Condition = "production"
	WhenNode        Condition = "node"
	WhenBrowser     Condition = "browser"
	WhenWatch       Condition = "watch"
)

// conditionOrder is the order matching blocks are applied in.
var conditionOrder = []Condition{WhenDevelopment, WhenProduction, WhenNode, WhenBrowser, WhenWatch}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	FS FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader() *Loader {
	return &Loader{FS: NewOSFS()}
}

// Find returns the first config file present in cwd, or an empty string.
func (l *Loader) Find(cwd string) (string, error) {
	for _, name := range domain.ConfigFileNames {
		path := filepath.Join(cwd, name)
		info, err := l.FS.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
			return "", zerr.With(err, "path", path)
		}
	}
	return "", nil
}

// Load reads and validates the config file at path.
func (l *Loader) Load(path string) (ports.ConfigProvider, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return nil, zerr.With(err, "path", path)
	}

	file, err := decodeFile(data)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		return nil, zerr.With(err, "path", path)
	}

	static, err := file.Layer.toConfig()
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if len(file.When) == 0 {
		return Static(static), nil
	}

	provider := &Conditional{Static: static, Blocks: make(map[Condition]domain.Config, len(file.When))}
	for name, layer := range file.When {
		cond := Condition(name)
		if !slices.Contains(conditionOrder, cond) {
			err := zerr.With(domain.ErrConfigParseFailed, "path", path)
			return nil, zerr.With(err, "unknown_condition", name)
		}
		if layer == nil {
			continue
		}
		block, err := layer.toConfig()
		if err != nil {
			err = zerr.With(err, "condition", name)
			return nil, zerr.With(err, "path", path)
		}
		provider.Blocks[cond] = block
	}
	return provider, nil
}

func decodeFile(data []byte) (*File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, err
	}
	return &file, nil
}

// Static is a config layer that does not depend on the base configuration.
type Static domain.Config

// Provide returns the layer unchanged.
func (s Static) Provide(domain.Config) (domain.Config, error) {
	return domain.Config(s), nil
}

// Conditional applies its static part, then every block whose condition holds for base.
type Conditional struct {
	Static domain.Config
	Blocks map[Condition]domain.Config
}

// Provide merges the matching blocks over the static part in condition order.
func (c *Conditional) Provide(base domain.Config) (domain.Config, error) {
	layers := []domain.Config{c.Static}
	for _, cond := range conditionOrder {
		block, ok := c.Blocks[cond]
		if !ok || !matches(cond, base) {
			continue
		}
		layers = append(layers, block)
	}
	return domain.MergeConfig(layers...)
}

func matches(cond Condition, base domain.Config) bool {
	switch cond {
	case WhenDevelopment:
		return base.Mode != nil && *base.Mode == domain.ModeDevelopment
	case WhenProduction:
		return base.Mode != nil && *base.Mode == domain.ModeProduction
	case WhenNode:
		return base.Target != nil && *base.Target == domain.TargetNode
	case WhenBrowser:
		return base.Target != nil && *base.Target == domain.TargetBrowser
	case WhenWatch:
		return base.Watch != nil && *base.Watch
	default:
		return false
	}
}
