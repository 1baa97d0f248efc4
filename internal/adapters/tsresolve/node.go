package tsresolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the module resolver Graft node.
const NodeID graft.ID = "adapter.module_resolver"

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModuleResolver, error) {
			return NewResolver(), nil
		},
	})
}
