// Package esbuild drives the esbuild Go API as the bundling engine and transpiler.
package esbuild

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var languageLevels = map[string]api.Target{
	"es3":    api.ES5,
	"es5":    api.ES5,
	"es6":    api.ES2015,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

var engineFormats = map[domain.EngineFormat]api.Format{
	domain.EngineESM:  api.FormatESModule,
	domain.EngineCJS:  api.FormatCommonJS,
	domain.EngineIIFE: api.FormatIIFE,
}

// languageLevel maps a compiler target such as es2020 to the engine target.
// Unknown and newer levels fall back to esnext.
func languageLevel(level string) api.Target {
	if target, ok := languageLevels[strings.ToLower(level)]; ok {
		return target
	}
	return api.ESNext
}

func apiLoader(loader domain.Loader) api.Loader {
	switch loader {
	case domain.LoaderTS:
		return api.LoaderTS
	case domain.LoaderTSX:
		return api.LoaderTSX
	case domain.LoaderJSX:
		return api.LoaderJSX
	case domain.LoaderText:
		return api.LoaderText
	default:
		return api.LoaderJS
	}
}

// loaderFor picks the source loader from a file extension.
func loaderFor(path string) domain.Loader {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return domain.LoaderTS
	case ".tsx":
		return domain.LoaderTSX
	case ".jsx":
		return domain.LoaderJSX
	case ".txt", ".md":
		return domain.LoaderText
	default:
		return domain.LoaderJS
	}
}

type tsconfigRaw struct {
	CompilerOptions tsCompilerOptions `json:"compilerOptions"`
}

type tsCompilerOptions struct {
	ExperimentalDecorators  bool   `json:"experimentalDecorators,omitempty"`
	EmitDecoratorMetadata   bool   `json:"emitDecoratorMetadata,omitempty"`
	UseDefineForClassFields *bool  `json:"useDefineForClassFields,omitempty"`
	PreserveConstEnums      bool   `json:"preserveConstEnums,omitempty"`
	JSX                     string `json:"jsx,omitempty"`
	JSXFactory              string `json:"jsxFactory,omitempty"`
	JSXFragmentFactory      string `json:"jsxFragmentFactory,omitempty"`
	JSXImportSource         string `json:"jsxImportSource,omitempty"`
	Target                  string `json:"target,omitempty"`
}

// rawTypeConfig renders the compiler options the engine honors as an inline tsconfig.
// Passing it keeps the engine from reading tsconfig.json files on its own.
func rawTypeConfig(types domain.TypeMetadata) string {
	raw := tsconfigRaw{CompilerOptions: tsCompilerOptions{
		ExperimentalDecorators:  types.ExperimentalDecorators,
		EmitDecoratorMetadata:   types.EmitDecoratorMetadata,
		UseDefineForClassFields: types.UseDefineForClassFields,
		PreserveConstEnums:      types.PreserveConstEnums,
		JSX:                     types.JSX,
		JSXFactory:              types.JSXFactory,
		JSXFragmentFactory:      types.JSXFragmentFactory,
		JSXImportSource:         types.JSXImportSource,
		Target:                  types.Target,
	}}
	out, err := json.Marshal(raw)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// outputNames strips the extension from a name template. The engine appends it itself.
func outputNames(template, ext string) string {
	name := strings.TrimSuffix(template, "."+ext)
	if name == "" {
		return "[name]"
	}
	return name
}

// buildOptions translates bundle options into engine options.
func buildOptions(opts ports.BundleOptions, plugins ...api.Plugin) api.BuildOptions {
	entries := make([]api.EntryPoint, 0, len(opts.Entries))
	for _, entry := range opts.Entries {
		entries = append(entries, api.EntryPoint{InputPath: entry.Path, OutputPath: entry.Name})
	}

	build := api.BuildOptions{
		EntryPointsAdvanced: entries,
		AbsWorkingDir:       opts.Cwd,
		Outdir:              opts.OutDir,
		EntryNames:          outputNames(opts.EntryNames, opts.Extension),
		ChunkNames:          outputNames(opts.ChunkNames, opts.Extension),
		OutExtension:        map[string]string{".js": "." + opts.Extension},
		Bundle:              true,
		Write:               false,
		Metafile:            true,
		Format:              engineFormats[opts.Format.Engine],
		Splitting:           opts.Format.Engine == domain.EngineESM,
		Target:              languageLevel(opts.Target),
		TsconfigRaw:         rawTypeConfig(opts.Types),
		Charset:             api.CharsetUTF8,
		LogLevel:            api.LogLevelSilent,
		Plugins:             plugins,
	}

	if opts.Platform == domain.TargetBrowser {
		build.Platform = api.PlatformBrowser
	} else {
		build.Platform = api.PlatformNode
	}

	if opts.Format.Engine == domain.EngineIIFE {
		build.GlobalName = opts.GlobalName
	}

	if opts.Sourcemap {
		build.Sourcemap = api.SourceMapLinked
	}

	if opts.Minify {
		build.MinifyWhitespace = true
		build.MinifyIdentifiers = true
		build.MinifySyntax = true
	}

	if opts.Treeshake {
		build.TreeShaking = api.TreeShakingTrue
	} else {
		build.TreeShaking = api.TreeShakingFalse
	}

	return build
}
