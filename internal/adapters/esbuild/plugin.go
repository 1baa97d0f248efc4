package esbuild

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

const pluginName = "pack"

// sourceFilter selects the files whose contents pass through the module transforms.
const sourceFilter = `\.(m?[jt]sx?|c[jt]s|txt|md)$`

// bridge connects engine plugin callbacks to the transform pipeline and the
// external classifier. The engine invokes callbacks synchronously during a
// build, so the context of the build in progress is stored for them.
type bridge struct {
	opts ports.BundleOptions

	mu  sync.RWMutex
	ctx context.Context
}

func newBridge(opts ports.BundleOptions) *bridge {
	return &bridge{opts: opts, ctx: context.Background()}
}

func (b *bridge) begin(ctx context.Context) {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()
}

func (b *bridge) context() context.Context {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ctx
}

func (b *bridge) plugin() api.Plugin {
	return api.Plugin{
		Name:  pluginName,
		Setup: b.setup,
	}
}

func (b *bridge) setup(build api.PluginBuild) {
	build.OnStart(func() (api.OnStartResult, error) {
		if b.opts.Pipeline != nil {
			b.opts.Pipeline.BuildStart(b.context())
		}
		return api.OnStartResult{}, nil
	})

	build.OnResolve(api.OnResolveOptions{Filter: shimFilter},
		func(args api.OnResolveArgs) (api.OnResolveResult, error) {
			return api.OnResolveResult{Path: args.Path, Namespace: shimNamespace}, nil
		})

	build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: shimNamespace},
		func(_ api.OnLoadArgs) (api.OnLoadResult, error) {
			contents := shimSource
			return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS, ResolveDir: b.opts.Cwd}, nil
		})

	build.OnResolve(api.OnResolveOptions{Filter: ".*"}, b.resolve)

	build.OnLoad(api.OnLoadOptions{Filter: sourceFilter, Namespace: "file"}, b.load)
}

// resolve runs the resolve transforms first, then the external classifier.
// An empty result hands resolution back to the engine.
func (b *bridge) resolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	// Builtins imported by the shim module are provided by the runtime.
	if args.Namespace == shimNamespace {
		return api.OnResolveResult{Path: args.Path, External: true}, nil
	}

	if b.opts.Pipeline != nil && args.Importer != "" {
		path, ok, err := b.opts.Pipeline.ResolveID(b.context(), args.Path, args.Importer)
		if err != nil {
			return api.OnResolveResult{}, err
		}
		if ok {
			return api.OnResolveResult{Path: path}, nil
		}
	}

	if b.opts.External != nil && b.opts.External(args.Path, args.Importer) {
		return api.OnResolveResult{Path: args.Path, External: true}, nil
	}

	return api.OnResolveResult{}, nil
}

func (b *bridge) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	// #nosec G304 -- path was resolved by the engine
	code, err := os.ReadFile(args.Path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrTransformFailed.Error())
		return api.OnLoadResult{}, zerr.With(err, "path", args.Path)
	}

	mod := domain.Module{ID: args.Path, Code: string(code), Loader: loaderFor(args.Path)}
	if b.opts.Pipeline != nil {
		mod, err = b.opts.Pipeline.TransformModule(b.context(), mod)
		if err != nil {
			return api.OnLoadResult{}, err
		}
	}

	return api.OnLoadResult{
		Contents:   &mod.Code,
		Loader:     apiLoader(mod.Loader),
		ResolveDir: filepath.Dir(args.Path),
	}, nil
}
