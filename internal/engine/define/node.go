package define

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/adapters/dotenv" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the define table builder Graft node.
const NodeID graft.ID = "engine.define"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{dotenv.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			env, err := graft.Dep[ports.EnvLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(env, log), nil
		},
	})
}
