package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// toConfig validates the layer and converts it to a partial domain configuration.
func (l *Layer) toConfig() (domain.Config, error) {
	var cfg domain.Config

	if l.Mode != nil {
		mode := domain.Mode(*l.Mode)
		if !mode.Valid() {
			return cfg, zerr.With(domain.ErrInvalidMode, "mode", *l.Mode)
		}
		cfg.Mode = &mode
	}

	if l.Target != nil {
		target := domain.Target(*l.Target)
		if !target.Valid() {
			return cfg, zerr.With(domain.ErrInvalidTarget, "target", *l.Target)
		}
		cfg.Target = &target
	}

	formats, err := toFormats(l.Format)
	if err != nil {
		return cfg, err
	}
	cfg.Format = formats

	if l.Primary != nil {
		primary := &domain.Primary{Disabled: l.Primary.Disabled}
		if !l.Primary.Disabled {
			primary.Format = domain.Format(l.Primary.Format)
			if !primary.Format.Valid() {
				return cfg, zerr.With(domain.ErrInvalidFormat, "primary", l.Primary.Format)
			}
		}
		cfg.Primary = primary
	}

	cfg.Parallel = l.Parallel
	cfg.Watch = l.Watch

	if l.Input != nil {
		entries, err := toInput(l.Input)
		if err != nil {
			return cfg, err
		}
		cfg.Input = entries
	}

	if l.Output != nil {
		if err := l.Output.apply(&cfg.Output); err != nil {
			return cfg, err
		}
	}

	if l.WatchList != nil {
		cfg.WatchList = domain.WatchListConfig{
			Config:      l.WatchList.Config,
			PackageJSON: l.WatchList.PackageJSON,
			TSConfig:    l.WatchList.TSConfig,
			DotEnv:      l.WatchList.DotEnv,
		}
		for _, pkg := range l.WatchList.Packages {
			if pkg.Name == "" {
				return cfg, zerr.With(domain.ErrInvalidPattern, "field", "watchList.packages")
			}
			if err := validateGlobs("watchList.packages", pkg.Include, pkg.Exclude); err != nil {
				return cfg, err
			}
			cfg.WatchList.Packages = append(cfg.WatchList.Packages, domain.PackageWatch{
				Name:    pkg.Name,
				Include: pkg.Include,
				Exclude: pkg.Exclude,
			})
		}
	}

	if l.WatchOptions != nil {
		if l.WatchOptions.Debounce != nil {
			debounce := time.Duration(*l.WatchOptions.Debounce)
			cfg.WatchOptions.Debounce = &debounce
		}
		if err := validateGlobs("watchOptions.ignore", l.WatchOptions.Ignore); err != nil {
			return cfg, err
		}
		cfg.WatchOptions.Ignore = l.WatchOptions.Ignore
	}

	cfg.Define = l.Define
	cfg.DefineEnv = l.DefineEnv

	if l.DefineRuntime != nil {
		cfg.DefineRuntime = domain.DefineRuntimeConfig{
			Mode:    l.DefineRuntime.Mode,
			Target:  l.DefineRuntime.Target,
			Version: l.DefineRuntime.Version,
		}
	}

	if l.LoadDotEnv != nil {
		cfg.LoadDotEnv = &domain.DotEnv{Enabled: l.LoadDotEnv.Enabled, Files: l.LoadDotEnv.Items}
	}
	cfg.CreateEnv = l.CreateEnv

	if err := ValidatePatterns("external", l.External); err != nil {
		return cfg, err
	}
	if err := ValidatePatterns("noExternal", l.NoExternal); err != nil {
		return cfg, err
	}
	cfg.External = l.External
	cfg.NoExternal = l.NoExternal

	cfg.ExternalDeps = toDepList(l.ExternalDeps)
	cfg.ExternalDevDeps = toDepList(l.ExternalDevDeps)
	cfg.ExternalPeerDeps = toDepList(l.ExternalPeerDeps)

	if l.Clean != nil {
		clean := &domain.Clean{Enabled: l.Clean.Enabled}
		for _, spec := range l.Clean.Specs {
			if spec.Target == "" {
				return cfg, zerr.With(domain.ErrInvalidPattern, "field", "clean.target")
			}
			if err := validateGlobs("clean", spec.Include, spec.Exclude); err != nil {
				return cfg, err
			}
			clean.Specs = append(clean.Specs, domain.CleanSpec{Target: spec.Target, Include: spec.Include, Exclude: spec.Exclude})
		}
		cfg.Clean = clean
	}

	if l.Copy != nil {
		cp := &domain.Copy{Enabled: l.Copy.Enabled}
		for _, spec := range l.Copy.Specs {
			if spec.From == "" {
				return cfg, zerr.With(domain.ErrInvalidPattern, "field", "copy.from")
			}
			if err := validateGlobs("copy", []string{spec.From}, spec.Include, spec.Exclude); err != nil {
				return cfg, err
			}
			cp.Specs = append(cp.Specs, domain.CopySpec{From: spec.From, To: spec.To, Include: spec.Include, Exclude: spec.Exclude})
		}
		cfg.Copy = cp
	}

	if l.Hooks != nil {
		cfg.Hooks = domain.Hooks{
			BeforeBuild:       l.Hooks.BeforeBuild,
			AfterBuild:        l.Hooks.AfterBuild,
			BeforeFormatBuild: l.Hooks.BeforeFormatBuild,
			AfterFormatBuild:  l.Hooks.AfterFormatBuild,
		}
	}

	if l.Logger != nil && l.Logger.Level != nil {
		level := domain.LogLevel(*l.Logger.Level)
		if !level.Valid() {
			return cfg, zerr.With(domain.ErrInvalidLogLevel, "level", *l.Logger.Level)
		}
		cfg.LogLevel = &level
	}

	return cfg, nil
}

func (o *OutputDTO) apply(out *domain.OutputConfig) error {
	out.Dir = o.Dir
	out.Name = o.Name
	out.EntryName = o.EntryName
	out.ChunkName = o.ChunkName
	out.Sourcemap = o.Sourcemap
	out.Minify = o.Minify
	out.Treeshake = o.Treeshake
	if o.Banner != nil {
		out.Banner = domain.Banner{Header: o.Banner.Header, Footer: o.Banner.Footer, EntryOnly: o.Banner.EntryOnly}
	}
	if o.ESM != nil {
		out.ESMShims = o.ESM.Shims
	}
	if o.DTS != nil {
		if err := ValidatePatterns("output.dts.external", o.DTS.External); err != nil {
			return err
		}
		if err := ValidatePatterns("output.dts.noExternal", o.DTS.NoExternal); err != nil {
			return err
		}
		out.DTS = domain.DeclarationOutput{External: o.DTS.External, NoExternal: o.DTS.NoExternal}
	}
	return nil
}

func toFormats(names []string) ([]domain.Format, error) {
	if len(names) == 0 {
		return nil, nil
	}
	formats := make([]domain.Format, 0, len(names))
	for _, name := range names {
		f := domain.Format(name)
		if !f.Valid() {
			return nil, zerr.With(domain.ErrInvalidFormat, "format", name)
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func toInput(dto *InputDTO) ([]domain.InputEntry, error) {
	entries := make([]domain.InputEntry, 0, len(dto.Entries))
	for _, entry := range dto.Entries {
		if strings.TrimSpace(entry.Input) == "" {
			return nil, zerr.With(domain.ErrInvalidInput, "name", entry.Name)
		}
		formats, err := toFormats(entry.Format)
		if err != nil {
			return nil, zerr.With(err, "input", entry.Input)
		}
		entries = append(entries, domain.InputEntry{Name: entry.Name, Path: entry.Input, Formats: formats})
	}
	return entries, nil
}

func toDepList(t *ToggleList) *domain.DepList {
	if t == nil {
		return nil
	}
	list := &domain.DepList{Enabled: t.Enabled}
	if t.Items != nil {
		list.Names = t.Items
	}
	return list
}

// ValidatePatterns checks that every external pattern is a valid glob or /regexp/.
func ValidatePatterns(field string, patterns []string) error {
	for _, pattern := range patterns {
		if expr, ok := domain.RegexpBody(pattern); ok {
			if _, err := regexp.Compile(expr); err != nil {
				err = zerr.Wrap(err, domain.ErrInvalidPattern.Error())
				err = zerr.With(err, "field", field)
				return zerr.With(err, "pattern", pattern)
			}
			continue
		}
		if err := validateGlobs(field, []string{pattern}); err != nil {
			return err
		}
	}
	return nil
}

func validateGlobs(field string, lists ...[]string) error {
	for _, list := range lists {
		for _, pattern := range list {
			if _, err := doublestar.Match(pattern, ""); err != nil {
				err = zerr.Wrap(err, domain.ErrInvalidPattern.Error())
				err = zerr.With(err, "field", field)
				return zerr.With(err, "pattern", pattern)
			}
		}
	}
	return nil
}
