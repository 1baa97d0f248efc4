package ports

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
)

// TranspileOptions controls a transpiler call.
type TranspileOptions struct {
	ModuleType domain.ModuleType
	Target     string
	Sourcemap  bool
	Minify     bool
	GlobalName string
	Types      domain.TypeMetadata
}

// Transpiler converts source between syntaxes and module systems.
//
//go:generate mockgen -source=transpiler.go -destination=mocks/mock_transpiler.go -package=mocks
type Transpiler interface {
	// TransformModule strips types and JSX and lowers syntax, keeping ES module syntax.
	TransformModule(ctx context.Context, mod domain.Module, opts TranspileOptions) (domain.Module, error)
	// TransformChunk converts an emitted chunk to the requested module type.
	TransformChunk(ctx context.Context, chunk *domain.Chunk, opts TranspileOptions) error
}
