package esbuild_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/esbuild"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

func TestTranspiler_TransformModule(t *testing.T) {
	mod := domain.Module{
		ID:     "/project/src/main.ts",
		Code:   "import { a } from './a';\nexport const b: number = a as number;\n",
		Loader: domain.LoaderTS,
	}

	out, err := esbuild.NewTranspiler().TransformModule(t.Context(), mod, ports.TranspileOptions{Target: "es2020"})
	require.NoError(t, err)

	assert.Equal(t, domain.LoaderJS, out.Loader)
	assert.Contains(t, out.Code, `import { a } from "./a";`)
	assert.NotContains(t, out.Code, "number")
}

func TestTranspiler_TransformModule_SyntaxError(t *testing.T) {
	mod := domain.Module{ID: "/project/src/broken.ts", Code: "export const = ;", Loader: domain.LoaderTS}

	_, err := esbuild.NewTranspiler().TransformModule(t.Context(), mod, ports.TranspileOptions{})
	require.ErrorContains(t, err, domain.ErrTranspileFailed.Error())
}

func TestTranspiler_TransformModule_TextUntouched(t *testing.T) {
	mod := domain.Module{ID: "/project/README.md", Code: "# title", Loader: domain.LoaderText}

	out, err := esbuild.NewTranspiler().TransformModule(t.Context(), mod, ports.TranspileOptions{})
	require.NoError(t, err)
	assert.Equal(t, mod, out)
}

func TestTranspiler_TransformChunk(t *testing.T) {
	code := "var lib = require(\"lib\");\nmodule.exports = lib;\n//# sourceMappingURL=main.js.map\n"

	tests := []struct {
		name       string
		moduleType domain.ModuleType
		prefix     string
		contains   []string
	}{
		{
			name:       "AMD",
			moduleType: domain.ModuleAMD,
			prefix:     `define(["require", "exports", "module", "lib"], function (require, exports, module) {`,
		},
		{
			name:       "UMD",
			moduleType: domain.ModuleUMD,
			prefix:     "(function (root, factory) {",
			contains:   []string{`root["Lib"] = m.exports;`, `define.amd) define(["require", "exports", "module", "lib"], factory)`},
		},
		{
			name:       "SystemJS",
			moduleType: domain.ModuleSystemJS,
			prefix:     `System.register(["lib"], function (_export, _context) {`,
			contains:   []string{`deps["lib"] = m;`, "_export(module.exports);"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := &domain.Chunk{FileName: "main.js", Code: code, Map: `{"version":3,"mappings":"AAAA"}`}

			err := esbuild.NewTranspiler().TransformChunk(t.Context(), chunk, ports.TranspileOptions{
				ModuleType: tt.moduleType,
				GlobalName: "Lib",
			})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(chunk.Code, tt.prefix), chunk.Code)
			assert.True(t, strings.HasSuffix(chunk.Code, "//# sourceMappingURL=main.js.map\n"), chunk.Code)
			for _, want := range tt.contains {
				assert.Contains(t, chunk.Code, want)
			}
			assert.NotEqual(t, `{"version":3,"mappings":"AAAA"}`, chunk.Map)
		})
	}
}

func TestTranspiler_TransformChunk_Unwrapped(t *testing.T) {
	chunk := &domain.Chunk{Code: "export {};\n"}

	err := esbuild.NewTranspiler().TransformChunk(t.Context(), chunk, ports.TranspileOptions{ModuleType: domain.ModuleES6})
	require.NoError(t, err)
	assert.Equal(t, "export {};\n", chunk.Code)
}
