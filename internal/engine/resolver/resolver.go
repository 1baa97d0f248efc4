// Package resolver merges configuration layers into one immutable ResolvedConfig.
package resolver

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// nodeEnv is the environment variable selecting the mode.
const nodeEnv = "NODE_ENV"

// Resolution is the outcome of one resolution: the configuration and the metadata it was inferred from.
type Resolution struct {
	Config  *domain.ResolvedConfig
	Package domain.PackageMetadata
	Types   domain.TypeMetadata
}

// Resolver resolves the configuration of a project directory.
type Resolver struct {
	loader    ports.ConfigLoader
	metadata  ports.MetadataLoader
	lookupEnv func(key string) (string, bool)
}

// NewResolver creates a new Resolver.
func NewResolver(loader ports.ConfigLoader, metadata ports.MetadataLoader) *Resolver {
	return &Resolver{loader: loader, metadata: metadata, lookupEnv: os.LookupEnv}
}

// Resolve merges the defaults, the discovered project configuration and the
// caller overrides, in that precedence order, and derives every unset field.
func (r *Resolver) Resolve(cwd string, overrides domain.Config) (Resolution, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return Resolution{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	base, err := domain.MergeConfig(Defaults(), overrides)
	if err != nil {
		return Resolution{}, err
	}
	base.Mode = r.mode(base)

	configFile, user, err := r.discover(cwd, base)
	if err != nil {
		return Resolution{}, err
	}

	merged, err := domain.MergeConfig(Defaults(), user, overrides)
	if err != nil {
		return Resolution{}, err
	}
	merged.Mode = r.mode(merged)

	pkg, err := r.metadata.LoadPackage(cwd)
	if err != nil {
		return Resolution{}, err
	}
	types, err := r.metadata.LoadTypes(cwd)
	if err != nil {
		return Resolution{}, err
	}

	resolved, err := derive(cwd, merged, pkg, types)
	if err != nil {
		return Resolution{}, err
	}
	resolved.ConfigFile = configFile

	return Resolution{Config: resolved, Package: pkg, Types: types}, nil
}

// discover loads the project configuration file, if any, and evaluates it against base.
func (r *Resolver) discover(cwd string, base domain.Config) (string, domain.Config, error) {
	path, err := r.loader.Find(cwd)
	if err != nil || path == "" {
		return "", domain.Config{}, err
	}
	provider, err := r.loader.Load(path)
	if err != nil {
		return "", domain.Config{}, err
	}
	user, err := provider.Provide(base)
	if err != nil {
		return "", domain.Config{}, zerr.With(err, "path", path)
	}
	return path, user, nil
}

// mode keeps an explicit mode, else follows NODE_ENV, else the watch flag.
func (r *Resolver) mode(cfg domain.Config) *domain.Mode {
	if cfg.Mode != nil {
		return cfg.Mode
	}
	if value, ok := r.lookupEnv(nodeEnv); ok && value != "" {
		if value == string(domain.ModeDevelopment) {
			return ptr(domain.ModeDevelopment)
		}
		return ptr(domain.ModeProduction)
	}
	if cfg.Watch != nil && *cfg.Watch {
		return ptr(domain.ModeDevelopment)
	}
	return ptr(domain.ModeProduction)
}

// derive fills every field left unset by all layers.
func derive(cwd string, cfg domain.Config, pkg domain.PackageMetadata, types domain.TypeMetadata) (*domain.ResolvedConfig, error) {
	mode := *cfg.Mode
	target := *cfg.Target

	res := &domain.ResolvedConfig{
		Cwd:      cwd,
		Mode:     mode,
		Target:   target,
		Parallel: deref(cfg.Parallel, true),
		Watch:    deref(cfg.Watch, false),
		WatchList: domain.WatchListOptions{
			Config:      deref(cfg.WatchList.Config, true),
			PackageJSON: deref(cfg.WatchList.PackageJSON, true),
			TSConfig:    deref(cfg.WatchList.TSConfig, true),
			DotEnv:      deref(cfg.WatchList.DotEnv, true),
			Packages:    cfg.WatchList.Packages,
		},
		WatchOptions: domain.WatchOptions{
			Debounce: deref(cfg.WatchOptions.Debounce, defaultDebounce),
			Ignore:   cfg.WatchOptions.Ignore,
		},
		Define:    cfg.Define,
		DefineEnv: cfg.DefineEnv,
		DefineRuntime: domain.DefineRuntime{
			Mode:    deref(cfg.DefineRuntime.Mode, true),
			Target:  deref(cfg.DefineRuntime.Target, false),
			Version: deref(cfg.DefineRuntime.Version, false),
		},
		CreateEnv:  deref(cfg.CreateEnv, false),
		External:   cfg.External,
		NoExternal: cfg.NoExternal,
		Hooks: domain.HookCommands{
			BeforeBuild:       deref(cfg.Hooks.BeforeBuild, ""),
			AfterBuild:        deref(cfg.Hooks.AfterBuild, ""),
			BeforeFormatBuild: deref(cfg.Hooks.BeforeFormatBuild, ""),
			AfterFormatBuild:  deref(cfg.Hooks.AfterFormatBuild, ""),
		},
		LogLevel: deref(cfg.LogLevel, domain.LogInfo),
	}

	res.Input = cfg.Input
	if len(res.Input) == 0 {
		res.Input = []domain.InputEntry{probeInput(cwd)}
	}

	res.Output = deriveOutput(cwd, cfg.Output, mode, pkg, types)

	res.Formats = deriveFormats(cfg.Format, pkg)
	primary, err := derivePrimary(cfg.Primary, res.Formats, pkg)
	if err != nil {
		return nil, err
	}
	res.Primary = primary

	nodeTarget := target == domain.TargetNode
	res.ExternalDeps = expandDeps(cfg.ExternalDeps, nodeTarget, pkg.Dependencies)
	res.ExternalDevDeps = expandDeps(cfg.ExternalDevDeps, nodeTarget, pkg.DevDependencies)
	res.ExternalPeerDeps = expandDeps(cfg.ExternalPeerDeps, nodeTarget, pkg.PeerDependencies)

	res.DotEnv = domain.DotEnv{Enabled: true}
	if cfg.LoadDotEnv != nil {
		res.DotEnv = *cfg.LoadDotEnv
	}

	res.Clean = deriveClean(cfg.Clean, mode, res.Output.Dir)
	res.Copy = deriveCopy(cfg.Copy, res.Output.Dir)

	return res, nil
}

func deriveOutput(cwd string, out domain.OutputConfig, mode domain.Mode, pkg domain.PackageMetadata, types domain.TypeMetadata) domain.Output {
	resolved := domain.Output{
		Dir:       deref(out.Dir, ""),
		Name:      deref(out.Name, pkg.Name),
		EntryName: deref(out.EntryName, defaultEntryName),
		ChunkName: deref(out.ChunkName, defaultChunkName),
		Sourcemap: deref(out.Sourcemap, mode == domain.ModeDevelopment),
		Minify:    deref(out.Minify, mode == domain.ModeProduction),
		Treeshake: deref(out.Treeshake, true),
		Header:    deref(out.Banner.Header, ""),
		Footer:    deref(out.Banner.Footer, ""),
		EntryOnly: deref(out.Banner.EntryOnly, false),
		ESMShims:  deref(out.ESMShims, true),
		DTS:       out.DTS,
	}

	if resolved.Dir == "" {
		resolved.Dir = outputDir(cwd, pkg, types)
	}
	return resolved
}

// outputDir picks the compiler's outDir, then the directory of the package's
// main file, then dist. A main file in the project root does not count.
func outputDir(cwd string, pkg domain.PackageMetadata, types domain.TypeMetadata) string {
	if types.OutDir != "" {
		if rel, err := filepath.Rel(cwd, types.OutDir); err == nil {
			return filepath.ToSlash(rel)
		}
		return types.OutDir
	}
	if pkg.Main != "" {
		if dir := filepath.Dir(filepath.Clean(pkg.Main)); dir != "." && !strings.HasPrefix(dir, "..") {
			return filepath.ToSlash(dir)
		}
	}
	return domain.DefaultOutDir
}

// probeInput returns the first conventional entry file that exists.
func probeInput(cwd string) domain.InputEntry {
	for _, dir := range inputDirs {
		for _, name := range inputNames {
			for _, ext := range inputExtensions {
				rel := filepath.Join(dir, name+ext)
				if info, err := os.Stat(filepath.Join(cwd, rel)); err == nil && info.Mode().IsRegular() {
					return domain.InputEntry{Name: name, Path: filepath.ToSlash(rel)}
				}
			}
		}
	}
	return domain.InputEntry{Name: "main", Path: domain.DefaultInput}
}

// deriveFormats deduplicates the requested formats, keeping declaration order.
// With none requested, the package type decides, plus dts for typed packages.
func deriveFormats(requested []domain.Format, pkg domain.PackageMetadata) []domain.Format {
	if len(requested) == 0 {
		requested = []domain.Format{domain.FormatCJS}
		if pkg.IsModule() {
			requested = []domain.Format{domain.FormatESM}
		}
		if pkg.Types != "" {
			requested = append(requested, domain.FormatDTS)
		}
	}

	formats := make([]domain.Format, 0, len(requested))
	for _, format := range requested {
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}
	return formats
}

func derivePrimary(primary *domain.Primary, formats []domain.Format, pkg domain.PackageMetadata) (domain.Format, error) {
	if primary != nil {
		if primary.Disabled {
			return "", nil
		}
		if !slices.Contains(formats, primary.Format) {
			return "", zerr.With(domain.ErrInvalidPrimary, "primary", string(primary.Format))
		}
		return primary.Format, nil
	}

	switch {
	case pkg.IsModule() && slices.Contains(formats, domain.FormatESM):
		return domain.FormatESM, nil
	case !pkg.IsModule() && slices.Contains(formats, domain.FormatCJS):
		return domain.FormatCJS, nil
	}
	for _, format := range formats {
		if spec, ok := domain.LookupFormat(format); ok && !spec.Declaration {
			return format, nil
		}
	}
	return "", nil
}

// expandDeps resolves a dependency toggle. An explicit list is used as-is.
func expandDeps(list *domain.DepList, enabledByDefault bool, names []string) []string {
	if list == nil {
		if enabledByDefault {
			return names
		}
		return nil
	}
	if list.Names != nil {
		return list.Names
	}
	if list.Enabled {
		return names
	}
	return nil
}

func deriveClean(clean *domain.Clean, mode domain.Mode, outDir string) []domain.CleanSpec {
	enabled := mode == domain.ModeProduction
	var specs []domain.CleanSpec
	if clean != nil {
		enabled = clean.Enabled
		specs = clean.Specs
	}
	if !enabled {
		return nil
	}
	if len(specs) == 0 {
		return []domain.CleanSpec{{Target: outDir}}
	}
	return specs
}

func deriveCopy(cp *domain.Copy, outDir string) []domain.CopySpec {
	if cp == nil || !cp.Enabled {
		return nil
	}
	if len(cp.Specs) == 0 {
		return []domain.CopySpec{{From: domain.DefaultCopyFrom, To: outDir}}
	}
	specs := make([]domain.CopySpec, len(cp.Specs))
	for i, spec := range cp.Specs {
		if spec.To == "" {
			spec.To = outDir
		}
		specs[i] = spec
	}
	return specs
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
