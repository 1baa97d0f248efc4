package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/adapters/esbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/tsc"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/tsresolve" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			esbuild.BundlerNodeID,
			tsc.NodeID,
			esbuild.TranspilerNodeID,
			tsresolve.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			bundler, err := graft.Dep[ports.Bundler](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[*tsc.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			transpiler, err := graft.Dep[ports.Transpiler](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ModuleResolver](ctx)
			if err != nil {
				return nil, err
			}

			hooks, err := graft.Dep[ports.HookRunner](ctx)
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

			return NewOrchestrator(bundler, compiler, transpiler, resolver, hooks, log, tracer), nil
		},
	})
}
