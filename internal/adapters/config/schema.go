package config

import (
	"strconv"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File represents the structure of the pack.yaml configuration file.
type File struct {
	Layer `yaml:",inline"`
	When  map[string]*Layer `yaml:"when"`
}

// Layer is one set of settings: the static part of the file or a conditional block.
type Layer struct {
	Mode             *string           `yaml:"mode"`
	Target           *string           `yaml:"target"`
	Format           StringList        `yaml:"format"`
	Primary          *PrimaryDTO       `yaml:"primary"`
	Parallel         *bool             `yaml:"parallel"`
	Watch            *bool             `yaml:"watch"`
	Input            *InputDTO         `yaml:"input"`
	Output           *OutputDTO        `yaml:"output"`
	WatchList        *WatchListDTO     `yaml:"watchList"`
	WatchOptions     *WatchOptionsDTO  `yaml:"watchOptions"`
	Define           map[string]any    `yaml:"define"`
	DefineEnv        map[string]any    `yaml:"defineEnv"`
	DefineRuntime    *DefineRuntimeDTO `yaml:"defineRuntime"`
	LoadDotEnv       *ToggleList       `yaml:"loadDotEnv"`
	CreateEnv        *bool             `yaml:"createEnv"`
	External         StringList        `yaml:"external"`
	NoExternal       StringList        `yaml:"noExternal"`
	ExternalDeps     *ToggleList       `yaml:"externalDeps"`
	ExternalDevDeps  *ToggleList       `yaml:"externalDevDeps"`
	ExternalPeerDeps *ToggleList       `yaml:"externalPeerDeps"`
	Clean            *CleanDTO         `yaml:"clean"`
	Copy             *CopyDTO          `yaml:"copy"`
	Hooks            *HooksDTO         `yaml:"hooks"`
	Logger           *LoggerDTO        `yaml:"logger"`
}

// OutputDTO represents the output section.
type OutputDTO struct {
	Dir       *string    `yaml:"dir"`
	Name      *string    `yaml:"name"`
	EntryName *string    `yaml:"entryName"`
	ChunkName *string    `yaml:"chunkName"`
	Sourcemap *bool      `yaml:"sourcemap"`
	Minify    *bool      `yaml:"minify"`
	Treeshake *bool      `yaml:"treeshake"`
	Banner    *BannerDTO `yaml:"banner"`
	ESM       *struct {
		Shims *bool `yaml:"shims"`
	} `yaml:"esm"`
	DTS *struct {
		External   StringList `yaml:"external"`
		NoExternal StringList `yaml:"noExternal"`
	} `yaml:"dts"`
}

// WatchListDTO represents the watchList section.
type WatchListDTO struct {
	Config      *bool       `yaml:"config"`
	PackageJSON *bool       `yaml:"packageJson"`
	TSConfig    *bool       `yaml:"tsConfig"`
	DotEnv      *bool       `yaml:"dotEnv"`
	Packages    PackageList `yaml:"packages"`
}

// WatchOptionsDTO represents the watchOptions section.
type WatchOptionsDTO struct {
	Debounce *Duration `yaml:"debounce"`
	Ignore   StringList `yaml:"ignore"`
}

// DefineRuntimeDTO represents the defineRuntime section.
type DefineRuntimeDTO struct {
	Mode    *bool `yaml:"mode"`
	Target  *bool `yaml:"target"`
	Version *bool `yaml:"version"`
}

// HooksDTO represents the hooks section.
type HooksDTO struct {
	BeforeBuild       *string `yaml:"beforeBuild"`
	AfterBuild        *string `yaml:"afterBuild"`
	BeforeFormatBuild *string `yaml:"beforeFormatBuild"`
	AfterFormatBuild  *string `yaml:"afterFormatBuild"`
}

// LoggerDTO represents the logger section.
type LoggerDTO struct {
	Level *string `yaml:"level"`
}

// StringList accepts a single string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return nodeError(node, "expected a string or a list of strings")
	}
}

// ToggleList accepts a boolean, a single string or a list of strings.
// A string or list implies the toggle is on.
type ToggleList struct {
	Enabled bool
	Items   []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *ToggleList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!bool" {
		return node.Decode(&t.Enabled)
	}
	var items StringList
	if err := items.UnmarshalYAML(node); err != nil {
		return nodeError(node, "expected a boolean, a string or a list of strings")
	}
	t.Enabled = true
	t.Items = items
	return nil
}

// PrimaryDTO accepts a format name or false.
type PrimaryDTO struct {
	Format   string
	Disabled bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PrimaryDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return nodeError(node, "expected a format name or false")
	}
	if node.Tag == "!!bool" {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return err
		}
		if enabled {
			return nodeError(node, "primary accepts a format name or false")
		}
		p.Disabled = true
		return nil
	}
	p.Format = node.Value
	return nil
}

// InputDTO accepts a path, a list of paths or entry objects, or a map of entry names.
type InputDTO struct {
	Entries []InputEntryDTO
}

// InputEntryDTO is one entry point. Name is empty for list entries.
type InputEntryDTO struct {
	Name   string
	Input  string     `yaml:"input"`
	Format StringList `yaml:"format"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *InputDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		i.Entries = []InputEntryDTO{{Input: node.Value}}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			entry, err := decodeInputEntry(item)
			if err != nil {
				return err
			}
			i.Entries = append(i.Entries, entry)
		}
		return nil
	case yaml.MappingNode:
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			entry, err := decodeInputEntry(node.Content[idx+1])
			if err != nil {
				return err
			}
			entry.Name = node.Content[idx].Value
			i.Entries = append(i.Entries, entry)
		}
		return nil
	default:
		return nodeError(node, "expected a path, a list or a map of entries")
	}
}

func decodeInputEntry(node *yaml.Node) (InputEntryDTO, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return InputEntryDTO{Input: node.Value}, nil
	case yaml.MappingNode:
		var entry struct {
			Input  string     `yaml:"input"`
			Format StringList `yaml:"format"`
		}
		if err := node.Decode(&entry); err != nil {
			return InputEntryDTO{}, err
		}
		if entry.Input == "" {
			return InputEntryDTO{}, nodeError(node, "entry object requires 'input'")
		}
		return InputEntryDTO{Input: entry.Input, Format: entry.Format}, nil
	default:
		return InputEntryDTO{}, nodeError(node, "expected a path or an {input, format} object")
	}
}

// BannerDTO accepts a header string or a {header, footer, entryOnly} object.
type BannerDTO struct {
	Header    *string `yaml:"header"`
	Footer    *string `yaml:"footer"`
	EntryOnly *bool   `yaml:"entryOnly"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BannerDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		header := node.Value
		b.Header = &header
		return nil
	}
	type plain BannerDTO
	return node.Decode((*plain)(b))
}

// CleanDTO accepts a boolean, a target, a list of targets or spec objects.
type CleanDTO struct {
	Enabled bool
	Specs   []CleanSpecDTO
}

// CleanSpecDTO is one clean target.
type CleanSpecDTO struct {
	Target  string     `yaml:"target"`
	Include StringList `yaml:"include"`
	Exclude StringList `yaml:"exclude"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CleanDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!bool" {
		return node.Decode(&c.Enabled)
	}
	c.Enabled = true
	return decodeSpecs(node, &c.Specs, func(s string) CleanSpecDTO { return CleanSpecDTO{Target: s} })
}

// CopyDTO accepts a boolean, a source, a list of sources or spec objects.
type CopyDTO struct {
	Enabled bool
	Specs   []CopySpecDTO
}

// CopySpecDTO is one copy source.
type CopySpecDTO struct {
	From    string     `yaml:"from"`
	To      string     `yaml:"to"`
	Include StringList `yaml:"include"`
	Exclude StringList `yaml:"exclude"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CopyDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!bool" {
		return node.Decode(&c.Enabled)
	}
	c.Enabled = true
	return decodeSpecs(node, &c.Specs, func(s string) CopySpecDTO { return CopySpecDTO{From: s} })
}

// PackageList accepts a package name, a list of names or {name, include, exclude} objects.
type PackageList []PackageDTO

// PackageDTO is one watched workspace package.
type PackageDTO struct {
	Name    string     `yaml:"name"`
	Include StringList `yaml:"include"`
	Exclude StringList `yaml:"exclude"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PackageList) UnmarshalYAML(node *yaml.Node) error {
	var specs []PackageDTO
	if err := decodeSpecs(node, &specs, func(s string) PackageDTO { return PackageDTO{Name: s} }); err != nil {
		return err
	}
	*p = specs
	return nil
}

// decodeSpecs decodes a string, an object, or a list mixing both.
func decodeSpecs[T any](node *yaml.Node, out *[]T, fromString func(string) T) error {
	decodeOne := func(n *yaml.Node) error {
		switch n.Kind {
		case yaml.ScalarNode:
			*out = append(*out, fromString(n.Value))
			return nil
		case yaml.MappingNode:
			var spec T
			if err := n.Decode(&spec); err != nil {
				return err
			}
			*out = append(*out, spec)
			return nil
		default:
			return nodeError(n, "expected a string or an object")
		}
	}

	if node.Kind != yaml.SequenceNode {
		return decodeOne(node)
	}
	for _, item := range node.Content {
		if err := decodeOne(item); err != nil {
			return err
		}
	}
	return nil
}

// Duration accepts a Go duration string ("300ms") or an integer number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return nodeError(node, "expected a duration")
	}
	if ms, err := strconv.Atoi(node.Value); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return nodeError(node, "expected a duration such as 250ms")
	}
	*d = Duration(parsed)
	return nil
}

func nodeError(node *yaml.Node, msg string) error {
	err := zerr.New(msg)
	err = zerr.With(err, "line", node.Line)
	return zerr.With(err, "column", node.Column)
}
