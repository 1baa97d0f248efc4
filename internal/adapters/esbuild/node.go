package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/core/ports"
)

const (
	// BundlerNodeID is the unique identifier for the engine bundler Graft node.
	BundlerNodeID graft.ID = "adapter.esbuild_bundler"
	// TranspilerNodeID is the unique identifier for the transpiler Graft node.
	TranspilerNodeID graft.ID = "adapter.esbuild_transpiler"
)

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        BundlerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Bundler, error) {
			return NewBundler(), nil
		},
	})
	graft.Register(graft.Node[ports.Transpiler]{
		ID:        TranspilerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Transpiler, error) {
			return NewTranspiler(), nil
		},
	})
}
