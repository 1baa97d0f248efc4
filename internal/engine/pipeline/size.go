package pipeline

import (
	"context"
	"strconv"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

// Size logs the byte size of every chunk and of the whole bundle.
func Size(logger ports.Logger) Transform {
	return Transform{
		Name: "size",
		Generate: Hook[BundleFunc]{Order: OrderPost, Fn: func(_ context.Context, chunks []*domain.Chunk) error {
			total := 0
			for _, chunk := range chunks {
				size := len(chunk.Code)
				total += size
				logger.Info("Bundle " + chunk.FileName + " -> " + strconv.Itoa(size) + " bytes.")
			}
			logger.Info("Total bundle size is " + strconv.Itoa(total) + " bytes.")
			return nil
		}},
	}
}
