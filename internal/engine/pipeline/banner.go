package pipeline

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

// Banner places header and footer text around every chunk, or entry chunks only.
func Banner(out domain.Output, logger ports.Logger) Transform {
	t := Transform{Name: "banner"}
	if out.Header == "" && out.Footer == "" {
		return t
	}

	t.Chunk = Hook[ChunkFunc]{Order: OrderPost, Fn: func(_ context.Context, chunk *domain.Chunk) error {
		if out.EntryOnly && !chunk.IsEntry {
			return nil
		}
		if out.Header != "" {
			chunk.Prepend(out.Header + "\n")
			logger.Debug("header added to " + chunk.FileName)
		}
		if out.Footer != "" {
			chunk.Append("\n" + out.Footer)
			logger.Debug("footer added to " + chunk.FileName)
		}
		return nil
	}}
	return t
}
