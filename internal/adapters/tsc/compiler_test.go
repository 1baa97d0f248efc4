package tsc_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/tsc"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeCompiler emits src/main.d.ts into --outDir, mimicking tsc.
const fakeCompiler = `#!/bin/sh
out=""
watch=""
while [ $# -gt 0 ]; do
  case "$1" in
    --outDir) out="$2"; shift ;;
    --watch) watch=1 ;;
  esac
  shift
done
emit() {
  mkdir -p "$out/src/util"
  printf 'import type { Options } from "zod";\nexport declare const a: Options;\nexport default a;\n' > "$out/src/main.d.ts"
  printf 'export declare const b = 1;\n' > "$out/src/util/b.d.ts"
}
if [ -n "$watch" ]; then
  echo "[12:00:00 PM] Starting compilation in watch mode..."
  emit
  echo "[12:00:01 PM] Found 0 errors. Watching for file changes."
  sleep 30
  exit 0
fi
emit
`

const failingCompiler = `#!/bin/sh
echo "src/main.ts(1,7): error TS1134: Variable declaration expected."
exit 2
`

func setupProject(t *testing.T, script string) string {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "node_modules", ".bin")
	require.NoError(t, os.MkdirAll(bin, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "tsc"), []byte(script), domain.ExecPerm))
	return root
}

func declarationOptions(root string) ports.BundleOptions {
	spec, _ := domain.LookupFormat(domain.FormatDTS)
	return ports.BundleOptions{
		Cwd:        root,
		Format:     spec,
		Entries:    []domain.InputEntry{{Name: "index", Path: "src/main.ts"}},
		OutDir:     filepath.Join(root, "dist"),
		EntryNames: "[name].d.ts",
		Extension:  "d.ts",
	}
}

func TestCompiler_Locate(t *testing.T) {
	t.Run("project local", func(t *testing.T) {
		root := setupProject(t, fakeCompiler)
		path, err := tsc.NewCompiler().Locate(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "node_modules", ".bin", "tsc"), path)
	})

	t.Run("path", func(t *testing.T) {
		c := tsc.NewCompilerWithLookPath(func(string) (string, error) { return "/usr/bin/tsc", nil })
		path, err := c.Locate(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/tsc", path)
	})

	t.Run("missing", func(t *testing.T) {
		c := tsc.NewCompilerWithLookPath(func(string) (string, error) { return "", errors.New("not found") })
		_, err := c.Locate(t.TempDir())
		require.ErrorContains(t, err, domain.ErrCompilerNotFound.Error())
	})
}

func TestCompiler_Build(t *testing.T) {
	root := setupProject(t, fakeCompiler)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("declaration import zod is kept, declarations are not inlined")

	pipeline := mocks.NewMockPipeline(ctrl)
	pipeline.EXPECT().RenderChunk(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	pipeline.EXPECT().GenerateBundle(gomock.Any(), gomock.Len(3)).Return(nil)
	pipeline.EXPECT().WriteBundle(gomock.Any(), gomock.Len(3)).Return(nil)

	opts := declarationOptions(root)
	opts.Logger = log
	opts.Pipeline = pipeline
	opts.External = func(specifier, _ string) bool { return specifier != "zod" }

	result, err := tsc.NewCompiler().Build(t.Context(), opts)
	require.NoError(t, err)
	assert.Len(t, result.Files, 3)
	assert.Nil(t, result.Cache)

	entry, err := os.ReadFile(filepath.Join(root, "dist", "index.d.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export * from \"./src/main\";\nexport { default } from \"./src/main\";\n", string(entry))

	assert.FileExists(t, filepath.Join(root, "dist", "src", "main.d.ts"))
	assert.FileExists(t, filepath.Join(root, "dist", "src", "util", "b.d.ts"))
}

func TestCompiler_Build_Failure(t *testing.T) {
	root := setupProject(t, failingCompiler)

	_, err := tsc.NewCompiler().Build(t.Context(), declarationOptions(root))
	require.ErrorContains(t, err, domain.ErrDeclarationFailed.Error())
	assert.NoDirExists(t, filepath.Join(root, "dist"))
}

func TestCompiler_Watch(t *testing.T) {
	root := setupProject(t, fakeCompiler)

	handle, err := tsc.NewCompiler().Watch(t.Context(), declarationOptions(root))
	require.NoError(t, err)

	for _, kind := range []domain.BundleEventKind{domain.EventStart, domain.EventEnd, domain.EventIdle} {
		select {
		case event := <-handle.Events():
			require.Equal(t, kind, event.Kind, "unexpected event %+v", event)
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for compiler event")
		}
	}
	assert.FileExists(t, filepath.Join(root, "dist", "index.d.ts"))

	require.NoError(t, handle.Close())
	require.NoError(t, handle.Close())
}

func TestClassify(t *testing.T) {
	kind, _ := tsc.Classify("[1:02:03 PM] File change detected. Starting incremental compilation...")
	assert.Equal(t, tsc.LineStarted, kind)

	kind, count := tsc.Classify("[1:02:04 PM] Found 2 errors. Watching for file changes.")
	assert.Equal(t, tsc.LineFinished, kind)
	assert.Equal(t, 2, count)

	kind, count = tsc.Classify("[1:02:04 PM] Found 1 error. Watching for file changes.")
	assert.Equal(t, tsc.LineFinished, kind)
	assert.Equal(t, 1, count)

	kind, _ = tsc.Classify("src/main.ts(1,7): error TS1134")
	assert.Equal(t, tsc.LineOutput, kind)
}

func TestImportPath(t *testing.T) {
	assert.Equal(t, "./src/main.d.ts", tsc.ImportPath("index.d.ts", "src/main.d.ts"))
	assert.Equal(t, "../src/main.d.ts", tsc.ImportPath("types/index.d.ts", "src/main.d.ts"))
	assert.Equal(t, "./main.d.ts", tsc.ImportPath("src/index.d.ts", "src/main.d.ts"))
}

func TestCompilerArgs(t *testing.T) {
	opts := declarationOptions("/project")
	assert.Equal(t,
		[]string{"--declaration", "--emitDeclarationOnly", "--outDir", "/tmp/out", "--rootDir", "/project", "src/main.ts"},
		tsc.CompilerArgs(opts, "/tmp/out"))

	opts.Types = domain.TypeMetadata{Path: "/project/tsconfig.json", RootDir: "/project/src"}
	assert.Equal(t,
		[]string{"--declaration", "--emitDeclarationOnly", "--outDir", "/tmp/out", "--rootDir", "/project/src", "--project", "/project/tsconfig.json"},
		tsc.CompilerArgs(opts, "/tmp/out"))
}
