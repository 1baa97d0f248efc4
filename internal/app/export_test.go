package app

import (
	"io"

	"go.trai.ch/pack/internal/engine/resolver"
	"go.trai.ch/pack/internal/engine/task"
)

// RenderSummary exposes renderSummary for testing.
func RenderSummary(w io.Writer, reports []task.Report) {
	renderSummary(w, reports)
}

// WatchList exposes watchList for testing.
func WatchList(res resolver.Resolution, envFiles []string) []string {
	return watchList(res, envFiles)
}
