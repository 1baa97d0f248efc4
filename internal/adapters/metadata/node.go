package metadata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the metadata loader Graft node.
const NodeID graft.ID = "adapter.metadata_loader"

func init() {
	graft.Register(graft.Node[ports.MetadataLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataLoader, error) {
			return NewLoader(), nil
		},
	})
}
