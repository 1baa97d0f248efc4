package pipeline

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// shebangs holds the interpreter lines removed during one build, keyed by module id.
type shebangs struct {
	mu      sync.Mutex
	lines   map[string]string
	entries map[string]struct{}
}

func (s *shebangs) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[string]string)
	s.entries = make(map[string]struct{})
}

// Shebang moves interpreter lines from entry sources to their entry chunks
// and makes those files executable.
func Shebang(logger ports.Logger) Transform {
	state := &shebangs{}
	state.reset()

	return Transform{
		Name:       "shebang",
		BuildStart: func(context.Context) { state.reset() },
		Module: Hook[ModuleFunc]{Order: OrderPre, Fn: func(_ context.Context, mod domain.Module) (domain.Module, error) {
			if !strings.HasPrefix(mod.Code, "#!") {
				return mod, nil
			}
			end := strings.IndexByte(mod.Code, '\n')
			if end < 0 {
				end = len(mod.Code)
			}
			line := strings.TrimRight(mod.Code[:end], "\r")

			state.mu.Lock()
			state.lines[mod.ID] = line
			state.mu.Unlock()

			mod.Code = mod.Code[end:]
			logger.Debug("shebang found in " + mod.ID)
			return mod, nil
		}},
		Chunk: Hook[ChunkFunc]{Order: OrderPost, Fn: func(_ context.Context, chunk *domain.Chunk) error {
			if !chunk.IsEntry || chunk.FacadeModuleID == "" {
				return nil
			}
			state.mu.Lock()
			line, ok := state.lines[chunk.FacadeModuleID]
			if ok {
				state.entries[chunk.Path] = struct{}{}
			}
			state.mu.Unlock()
			if !ok {
				return nil
			}
			chunk.Prepend(line + "\n")
			return nil
		}},
		Written: Hook[BundleFunc]{Order: OrderPost, Fn: func(_ context.Context, chunks []*domain.Chunk) error {
			state.mu.Lock()
			defer state.mu.Unlock()
			for _, chunk := range chunks {
				if _, ok := state.entries[chunk.Path]; !ok {
					continue
				}
				if err := os.Chmod(chunk.Path, domain.ExecPerm); err != nil {
					err = zerr.Wrap(err, domain.ErrWriteOutputFailed.Error())
					return zerr.With(err, "path", chunk.Path)
				}
				logger.Debug("chmod " + chunk.Path)
			}
			return nil
		}},
	}
}
