package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/metadata" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the config resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, metadata.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			meta, err := graft.Dep[ports.MetadataLoader](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(loader, meta), nil
		},
	})
}
