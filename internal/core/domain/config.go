package domain

import "time"

// Mode selects development or production defaults.
type Mode string

const (
	// ModeDevelopment enables sourcemaps and disables minification by default.
	ModeDevelopment Mode = "development"
	// ModeProduction enables minification and cleaning by default.
	ModeProduction Mode = "production"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeDevelopment || m == ModeProduction
}

// Target selects the runtime the output is built for.
type Target string

const (
	// TargetNode builds for Node.js. Builtin modules stay external.
	TargetNode Target = "node"
	// TargetBrowser builds for browsers.
	TargetBrowser Target = "browser"
)

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	return t == TargetNode || t == TargetBrowser
}

// LogLevel is the minimum severity the logger prints.
type LogLevel string

const (
	LogDebug  LogLevel = "debug"
	LogInfo   LogLevel = "info"
	LogWarn   LogLevel = "warn"
	LogError  LogLevel = "error"
	LogSilent LogLevel = "silent"
)

// Valid reports whether l is a known level.
func (l LogLevel) Valid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError, LogSilent:
		return true
	default:
		return false
	}
}

// InputEntry is one named entry point. An empty Formats list means every format builds it.
type InputEntry struct {
	Name    string
	Path    string
	Formats []Format
}

// BuildsFor reports whether the entry is part of format f.
func (e InputEntry) BuildsFor(f Format) bool {
	if len(e.Formats) == 0 {
		return true
	}
	for _, entryFormat := range e.Formats {
		if entryFormat == f {
			return true
		}
	}
	return false
}

// Primary is an explicit primary-format setting. A nil *Primary means auto.
type Primary struct {
	Format   Format
	Disabled bool
}

// DepList is a bool-or-list toggle for dependency expansion.
// Names, when non-nil, is used as-is and implies Enabled.
type DepList struct {
	Enabled bool
	Names   []string
}

// DotEnv selects the dotenv files to read. Files, when non-nil, replaces the mode cascade.
type DotEnv struct {
	Enabled bool
	Files   []string
}

// CleanSpec removes Target, or only the files under it matching Include and not Exclude.
type CleanSpec struct {
	Target  string
	Include []string
	Exclude []string
}

// Clean is a bool-or-spec toggle. Enabled with no specs cleans the output directory.
type Clean struct {
	Enabled bool
	Specs   []CleanSpec
}

// CopySpec copies files from From (a directory or glob) into To.
type CopySpec struct {
	From    string
	To      string
	Include []string
	Exclude []string
}

// Copy is a bool-or-spec toggle. Enabled with no specs copies the public directory.
type Copy struct {
	Enabled bool
	Specs   []CopySpec
}

// PackageWatch names workspace-linked packages whose files trigger a re-run.
type PackageWatch struct {
	Name    string
	Include []string
	Exclude []string
}

// Banner is text placed around every chunk or only entry chunks.
type Banner struct {
	Header    *string
	Footer    *string
	EntryOnly *bool
}

// DeclarationOutput overrides bundle-level settings for the declaration format.
type DeclarationOutput struct {
	External   []string
	NoExternal []string
}

// OutputConfig is the partial output section.
type OutputConfig struct {
	Dir       *string
	Name      *string
	EntryName *string
	ChunkName *string
	Sourcemap *bool
	Minify    *bool
	Treeshake *bool
	Banner    Banner
	ESMShims  *bool
	DTS       DeclarationOutput
}

// WatchListConfig toggles which configuration-affecting files trigger a re-run.
type WatchListConfig struct {
	Config      *bool
	PackageJSON *bool
	TSConfig    *bool
	DotEnv      *bool
	Packages    []PackageWatch
}

// WatchOptionsConfig is the partial watch options section.
type WatchOptionsConfig struct {
	Debounce *time.Duration
	Ignore   []string
}

// DefineRuntimeConfig toggles the runtime constants injected into every build.
type DefineRuntimeConfig struct {
	Mode    *bool
	Target  *bool
	Version *bool
}

// Hooks are shell commands run around the build.
type Hooks struct {
	BeforeBuild       *string
	AfterBuild        *string
	BeforeFormatBuild *string
	AfterFormatBuild  *string
}

// Config is a partial configuration layer. Every field is optional.
type Config struct {
	Mode             *Mode
	Target           *Target
	Format           []Format
	Primary          *Primary
	Parallel         *bool
	Watch            *bool
	Input            []InputEntry
	Output           OutputConfig
	WatchList        WatchListConfig
	WatchOptions     WatchOptionsConfig
	Define           map[string]any
	DefineEnv        map[string]any
	DefineRuntime    DefineRuntimeConfig
	LoadDotEnv       *DotEnv
	CreateEnv        *bool
	External         []string
	NoExternal       []string
	ExternalDeps     *DepList
	ExternalDevDeps  *DepList
	ExternalPeerDeps *DepList
	Clean            *Clean
	Copy             *Copy
	Hooks            Hooks
	LogLevel         *LogLevel
}

// Output is the resolved output section.
type Output struct {
	Dir       string
	Name      string
	EntryName string
	ChunkName string
	Sourcemap bool
	Minify    bool
	Treeshake bool
	Header    string
	Footer    string
	EntryOnly bool
	ESMShims  bool
	DTS       DeclarationOutput
}

// WatchListOptions is the resolved set of watch-list toggles.
type WatchListOptions struct {
	Config      bool
	PackageJSON bool
	TSConfig    bool
	DotEnv      bool
	Packages    []PackageWatch
}

// WatchOptions is the resolved watch options section.
type WatchOptions struct {
	Debounce time.Duration
	Ignore   []string
}

// DefineRuntime is the resolved set of runtime constant toggles.
type DefineRuntime struct {
	Mode    bool
	Target  bool
	Version bool
}

// HookCommands holds the resolved hook commands. Empty strings are skipped.
type HookCommands struct {
	BeforeBuild       string
	AfterBuild        string
	BeforeFormatBuild string
	AfterFormatBuild  string
}

// ResolvedConfig is the immutable configuration snapshot of one run.
type ResolvedConfig struct {
	Cwd              string
	ConfigFile       string
	Mode             Mode
	Target           Target
	Formats          []Format
	Primary          Format
	Parallel         bool
	Watch            bool
	Input            []InputEntry
	Output           Output
	WatchList        WatchListOptions
	WatchOptions     WatchOptions
	Define           map[string]any
	DefineEnv        map[string]any
	DefineRuntime    DefineRuntime
	DotEnv           DotEnv
	CreateEnv        bool
	External         []string
	NoExternal       []string
	ExternalDeps     []string
	ExternalDevDeps  []string
	ExternalPeerDeps []string
	Clean            []CleanSpec
	Copy             []CopySpec
	Hooks            HookCommands
	LogLevel         LogLevel
}

// IsPrimary reports whether f is the primary format.
func (c *ResolvedConfig) IsPrimary(f Format) bool {
	return c.Primary != "" && c.Primary == f
}

// TaskConfig is the per-format view a Build Task runs with.
type TaskConfig struct {
	Config  *ResolvedConfig
	Spec    FormatSpec
	Primary bool
	Package PackageMetadata
	Types   TypeMetadata
}

// Format returns the task's format name.
func (t *TaskConfig) Format() Format {
	return t.Spec.Format
}

// Entries returns the input entries the task builds.
func (t *TaskConfig) Entries() []InputEntry {
	entries := make([]InputEntry, 0, len(t.Config.Input))
	for _, entry := range t.Config.Input {
		if entry.BuildsFor(t.Spec.Format) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// EntryName returns the expanded entry file name template.
func (t *TaskConfig) EntryName() string {
	return ExpandName(t.Config.Output.EntryName, t.Spec.Format, t.Primary)
}

// ChunkName returns the expanded chunk file name template.
func (t *TaskConfig) ChunkName() string {
	return ExpandName(t.Config.Output.ChunkName, t.Spec.Format, t.Primary)
}
