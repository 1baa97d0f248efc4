package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pack/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pack/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pack/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pack/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/engine/define"
	"go.trai.ch/pack/internal/engine/orchestrator"
	"go.trai.ch/pack/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			define.NodeID,
			orchestrator.NodeID,
			fs.HousekeeperNodeID,
			shell.NodeID,
			watcher.WatcherNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	defines, err := graft.Dep[*define.Builder](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	housekeeper, err := graft.Dep[ports.Housekeeper](ctx)
	if err != nil {
		return nil, err
	}

	hooks, err := graft.Dep[ports.HookRunner](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(res, defines, orch, housekeeper, hooks, w, log, tracer), nil
}
