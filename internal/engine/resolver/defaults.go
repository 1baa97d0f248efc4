package resolver

import (
	"time"

	"go.trai.ch/pack/internal/core/domain"
)

const (
	defaultDebounce  = 250 * time.Millisecond
	defaultEntryName = "[name].[ext]"
	defaultChunkName = "[hash].[ext]"
)

var defaultWatchIgnore = []string{"**/" + domain.NodeModulesDir + "/**"}

// inputDirs and inputNames are probed in order for a conventional entry file.
var (
	inputDirs       = []string{"src", "source", ""}
	inputNames      = []string{"main", "index"}
	inputExtensions = []string{".js", ".mjs", ".cjs", ".ts"}
)

func ptr[T any](v T) *T { return &v }

// Defaults returns the lowest-precedence configuration layer.
func Defaults() domain.Config {
	return domain.Config{
		Target:   ptr(domain.TargetNode),
		Parallel: ptr(true),
		Output: domain.OutputConfig{
			EntryName: ptr(defaultEntryName),
			ChunkName: ptr(defaultChunkName),
			Treeshake: ptr(true),
			ESMShims:  ptr(true),
			Banner:    domain.Banner{EntryOnly: ptr(false)},
		},
		WatchList: domain.WatchListConfig{
			Config:      ptr(true),
			PackageJSON: ptr(true),
			TSConfig:    ptr(true),
			DotEnv:      ptr(true),
		},
		WatchOptions: domain.WatchOptionsConfig{
			Debounce: ptr(defaultDebounce),
			Ignore:   defaultWatchIgnore,
		},
		DefineRuntime: domain.DefineRuntimeConfig{
			Mode:    ptr(true),
			Target:  ptr(false),
			Version: ptr(false),
		},
		LoadDotEnv: &domain.DotEnv{Enabled: true},
		CreateEnv:  ptr(false),
		Copy:       &domain.Copy{Enabled: false},
		LogLevel:   ptr(domain.LogInfo),
	}
}
