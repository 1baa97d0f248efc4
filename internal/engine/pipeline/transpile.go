package pipeline

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

// Transpile lowers every code module and wraps chunks whose module system the engine cannot emit.
func Transpile(transpiler ports.Transpiler, spec domain.FormatSpec, opts ports.TranspileOptions) Transform {
	t := Transform{
		Name: "transpile",
		Module: Hook[ModuleFunc]{Order: OrderPost, Fn: func(ctx context.Context, mod domain.Module) (domain.Module, error) {
			if mod.Loader == domain.LoaderText {
				return mod, nil
			}
			return transpiler.TransformModule(ctx, mod, opts)
		}},
	}
	if spec.Wrapped() {
		t.Chunk = Hook[ChunkFunc]{Order: OrderPre, Fn: func(ctx context.Context, chunk *domain.Chunk) error {
			return transpiler.TransformChunk(ctx, chunk, opts)
		}}
	}
	return t
}
