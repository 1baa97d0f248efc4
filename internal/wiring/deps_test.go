package wiring_test

import (
	"io"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/config"
	"go.trai.ch/pack/internal/adapters/dotenv"
	"go.trai.ch/pack/internal/adapters/esbuild"
	"go.trai.ch/pack/internal/adapters/fs"
	"go.trai.ch/pack/internal/adapters/logger"
	"go.trai.ch/pack/internal/adapters/metadata"
	"go.trai.ch/pack/internal/adapters/shell"
	"go.trai.ch/pack/internal/adapters/telemetry"
	"go.trai.ch/pack/internal/adapters/tsc"
	"go.trai.ch/pack/internal/adapters/tsresolve"
	"go.trai.ch/pack/internal/adapters/watcher"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/engine/define"
	"go.trai.ch/pack/internal/engine/orchestrator"
	"go.trai.ch/pack/internal/engine/resolver"
)

// TestGraftDependencies checks that every node uses the dependencies it
// declares and declares the ones it uses.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}

// TestGraftRegistry checks that the wiring package registers every node and
// that the graph sorts without cycles or unknown dependencies.
func TestGraftRegistry(t *testing.T) {
	registry := graft.Registry()
	for _, id := range []graft.ID{
		app.AppNodeID,
		app.ComponentsNodeID,
		orchestrator.NodeID,
		resolver.NodeID,
		define.NodeID,
		config.NodeID,
		dotenv.NodeID,
		esbuild.BundlerNodeID,
		esbuild.TranspilerNodeID,
		fs.WalkerNodeID,
		fs.HousekeeperNodeID,
		logger.NodeID,
		metadata.NodeID,
		shell.NodeID,
		telemetry.NodeID,
		tsc.NodeID,
		tsresolve.NodeID,
		watcher.WatcherNodeID,
	} {
		assert.Contains(t, registry, id)
	}

	require.NoError(t, graft.PrintGraph(io.Discard))
}
