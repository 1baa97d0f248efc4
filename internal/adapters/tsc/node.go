package tsc

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the declaration compiler Graft node.
const NodeID graft.ID = "adapter.declaration_compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Compiler, error) {
			return NewCompiler(), nil
		},
	})
}
