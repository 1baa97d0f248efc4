// Package pipeline implements the ordered transforms the bundling engine applies during a build.
package pipeline

import (
	"cmp"
	"context"
	"reflect"
	"slices"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Pipeline = (*Pipeline)(nil)

// Order places a hook relative to the other hooks of the same kind.
type Order int

const (
	OrderPre Order = iota - 1
	OrderNormal
	OrderPost
)

type (
	// ResolveFunc resolves a specifier. ok is false when the transform does not handle it.
	ResolveFunc func(ctx context.Context, specifier, importer string) (path string, ok bool, err error)
	// ModuleFunc rewrites one source module.
	ModuleFunc func(ctx context.Context, mod domain.Module) (domain.Module, error)
	// ChunkFunc rewrites one emitted chunk in place.
	ChunkFunc func(ctx context.Context, chunk *domain.Chunk) error
	// BundleFunc observes or rewrites every chunk of a build.
	BundleFunc func(ctx context.Context, chunks []*domain.Chunk) error
)

// Hook is a transform callback with its order. A nil Fn means the transform has no hook of that kind.
type Hook[F any] struct {
	Order Order
	Fn    F
}

// Transform is one named step of the pipeline. Each hook kind is optional.
type Transform struct {
	Name       string
	BuildStart func(ctx context.Context)
	Resolve    Hook[ResolveFunc]
	Module     Hook[ModuleFunc]
	Chunk      Hook[ChunkFunc]
	Generate   Hook[BundleFunc]
	Written    Hook[BundleFunc]
}

type named[F any] struct {
	name string
	fn   F
}

// Pipeline runs transforms per hook kind, sorted by order, ties kept in list order.
type Pipeline struct {
	names    []string
	starts   []func(ctx context.Context)
	resolve  []named[ResolveFunc]
	module   []named[ModuleFunc]
	chunk    []named[ChunkFunc]
	generate []named[BundleFunc]
	written  []named[BundleFunc]
}

// New creates a pipeline of the given transforms in list order.
func New(transforms ...Transform) *Pipeline {
	p := &Pipeline{}
	for _, t := range transforms {
		p.names = append(p.names, t.Name)
		if t.BuildStart != nil {
			p.starts = append(p.starts, t.BuildStart)
		}
	}
	p.resolve = collect(transforms, func(t Transform) Hook[ResolveFunc] { return t.Resolve })
	p.module = collect(transforms, func(t Transform) Hook[ModuleFunc] { return t.Module })
	p.chunk = collect(transforms, func(t Transform) Hook[ChunkFunc] { return t.Chunk })
	p.generate = collect(transforms, func(t Transform) Hook[BundleFunc] { return t.Generate })
	p.written = collect(transforms, func(t Transform) Hook[BundleFunc] { return t.Written })
	return p
}

// collect returns the present hooks of one kind, stably sorted by order.
func collect[F any](transforms []Transform, hook func(Transform) Hook[F]) []named[F] {
	type ordered struct {
		order Order
		named[F]
	}
	var hooks []ordered
	for _, t := range transforms {
		h := hook(t)
		if isNil(h.Fn) {
			continue
		}
		hooks = append(hooks, ordered{order: h.Order, named: named[F]{name: t.Name, fn: h.Fn}})
	}
	slices.SortStableFunc(hooks, func(a, b ordered) int { return cmp.Compare(a.order, b.order) })

	out := make([]named[F], len(hooks))
	for i, h := range hooks {
		out[i] = h.named
	}
	return out
}

func isNil(fn any) bool {
	v := reflect.ValueOf(fn)
	return !v.IsValid() || v.IsNil()
}

// Names returns the transform names in list order.
func (p *Pipeline) Names() []string {
	return slices.Clone(p.names)
}

// BuildStart resets the per-build state of every transform.
func (p *Pipeline) BuildStart(ctx context.Context) {
	for _, start := range p.starts {
		start(ctx)
	}
}

// ResolveID returns the first resolution a transform produces.
func (p *Pipeline) ResolveID(ctx context.Context, specifier, importer string) (string, bool, error) {
	for _, h := range p.resolve {
		path, ok, err := h.fn(ctx, specifier, importer)
		if err != nil {
			return "", false, wrap(err, h.name, "specifier", specifier)
		}
		if ok {
			return path, true, nil
		}
	}
	return "", false, nil
}

// TransformModule passes mod through every module hook.
func (p *Pipeline) TransformModule(ctx context.Context, mod domain.Module) (domain.Module, error) {
	for _, h := range p.module {
		next, err := h.fn(ctx, mod)
		if err != nil {
			return mod, wrap(err, h.name, "path", mod.ID)
		}
		mod = next
	}
	return mod, nil
}

// RenderChunk passes chunk through every chunk hook.
func (p *Pipeline) RenderChunk(ctx context.Context, chunk *domain.Chunk) error {
	for _, h := range p.chunk {
		if err := h.fn(ctx, chunk); err != nil {
			return wrap(err, h.name, "chunk", chunk.FileName)
		}
	}
	return nil
}

// GenerateBundle runs every bundle generation hook.
func (p *Pipeline) GenerateBundle(ctx context.Context, chunks []*domain.Chunk) error {
	for _, h := range p.generate {
		if err := h.fn(ctx, chunks); err != nil {
			return wrap(err, h.name)
		}
	}
	return nil
}

// WriteBundle runs every bundle written hook.
func (p *Pipeline) WriteBundle(ctx context.Context, chunks []*domain.Chunk) error {
	for _, h := range p.written {
		if err := h.fn(ctx, chunks); err != nil {
			return wrap(err, h.name)
		}
	}
	return nil
}

func wrap(err error, transform string, kv ...string) error {
	err = zerr.Wrap(err, domain.ErrTransformFailed.Error())
	err = zerr.With(err, "transform", transform)
	for i := 0; i+1 < len(kv); i += 2 {
		err = zerr.With(err, kv[i], kv[i+1])
	}
	return err
}
