package ports

import (
	"context"
	"time"

	"go.trai.ch/pack/internal/core/domain"
)

// ExternalFunc decides whether an import stays external.
type ExternalFunc func(specifier, importer string) bool

// BundleOptions is everything the engine needs for one format.
type BundleOptions struct {
	Cwd        string
	Format     domain.FormatSpec
	Entries    []domain.InputEntry
	OutDir     string
	// EntryNames and ChunkNames are expanded name templates ending in Extension.
	EntryNames string
	ChunkNames string
	Extension  string
	GlobalName string
	Platform   domain.Target
	// Target is the language level, e.g. es2020.
	Target    string
	Sourcemap bool
	Minify    bool
	Treeshake bool
	Types     domain.TypeMetadata
	External  ExternalFunc
	Pipeline  Pipeline
	Logger    Logger
	// WatchDelay is the quiet window before a watch session rebuilds.
	WatchDelay time.Duration
	// WatchIgnore lists glob patterns of source files a watch session ignores.
	WatchIgnore []string
}

// Bundler drives the bundling engine.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Build runs one build and writes its output.
	Build(ctx context.Context, opts BundleOptions) (domain.BuildResult, error)
	// Watch starts a watch session. Events are delivered until the handle is closed.
	Watch(ctx context.Context, opts BundleOptions) (WatchHandle, error)
}

// WatchHandle is a running watch session.
type WatchHandle interface {
	Events() <-chan domain.BundleEvent
	Close() error
}

// Pipeline is the ordered transform chain the engine applies during a build.
type Pipeline interface {
	// BuildStart resets per-build state.
	BuildStart(ctx context.Context)
	// ResolveID resolves a specifier before the engine does. ok is false when no transform resolved it.
	ResolveID(ctx context.Context, specifier, importer string) (path string, ok bool, err error)
	// TransformModule runs the module-level transforms.
	TransformModule(ctx context.Context, mod domain.Module) (domain.Module, error)
	// RenderChunk runs the chunk-level transforms on one chunk.
	RenderChunk(ctx context.Context, chunk *domain.Chunk) error
	// GenerateBundle runs once per build over all chunks before they are written.
	GenerateBundle(ctx context.Context, chunks []*domain.Chunk) error
	// WriteBundle runs once per build after all chunks are written.
	WriteBundle(ctx context.Context, chunks []*domain.Chunk) error
}
