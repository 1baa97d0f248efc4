// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pack/internal/adapters/config"
	_ "go.trai.ch/pack/internal/adapters/dotenv"
	_ "go.trai.ch/pack/internal/adapters/esbuild"
	_ "go.trai.ch/pack/internal/adapters/fs"
	_ "go.trai.ch/pack/internal/adapters/logger"
	_ "go.trai.ch/pack/internal/adapters/metadata"
	_ "go.trai.ch/pack/internal/adapters/shell"
	_ "go.trai.ch/pack/internal/adapters/telemetry"
	_ "go.trai.ch/pack/internal/adapters/tsc"
	_ "go.trai.ch/pack/internal/adapters/tsresolve"
	_ "go.trai.ch/pack/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/pack/internal/app"
	_ "go.trai.ch/pack/internal/engine/define"
	_ "go.trai.ch/pack/internal/engine/orchestrator"
	_ "go.trai.ch/pack/internal/engine/resolver"
)
