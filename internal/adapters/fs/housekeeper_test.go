package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/fs"
	"go.trai.ch/pack/internal/core/domain"
)

func TestHousekeeper_Clean_WholeTarget(t *testing.T) {
	cwd := t.TempDir()
	writeTree(t, cwd, "dist/index.js", "dist/chunks/a.js", "src/main.ts")

	h := fs.NewHousekeeper(fs.NewWalker())
	require.NoError(t, h.Clean(context.Background(), cwd, []domain.CleanSpec{{Target: "dist"}}))

	assert.NoDirExists(t, filepath.Join(cwd, "dist"))
	assert.FileExists(t, filepath.Join(cwd, "src", "main.ts"))
}

func TestHousekeeper_Clean_Filtered(t *testing.T) {
	cwd := t.TempDir()
	writeTree(t, cwd, "dist/index.js", "dist/index.js.map", "dist/keep.txt")

	h := fs.NewHousekeeper(fs.NewWalker())
	err := h.Clean(context.Background(), cwd, []domain.CleanSpec{
		{Target: "dist", Include: []string{"**/*.js*"}},
	})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(cwd, "dist", "index.js"))
	assert.NoFileExists(t, filepath.Join(cwd, "dist", "index.js.map"))
	assert.FileExists(t, filepath.Join(cwd, "dist", "keep.txt"))
}

func TestHousekeeper_Clean_MissingTarget(t *testing.T) {
	h := fs.NewHousekeeper(fs.NewWalker())
	err := h.Clean(context.Background(), t.TempDir(), []domain.CleanSpec{
		{Target: "dist"},
		{Target: "tmp", Exclude: []string{"*.keep"}},
	})
	require.NoError(t, err)
}

func TestHousekeeper_Clean_RefusesRoot(t *testing.T) {
	cwd := t.TempDir()
	h := fs.NewHousekeeper(fs.NewWalker())

	err := h.Clean(context.Background(), cwd, []domain.CleanSpec{{Target: "."}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCleanFailed.Error())
	assert.DirExists(t, cwd)
}

func TestHousekeeper_Copy_Directory(t *testing.T) {
	cwd := t.TempDir()
	writeTree(t, cwd, "public/index.html", "public/img/logo.svg", "public/img/raw.psd")

	h := fs.NewHousekeeper(fs.NewWalker())
	err := h.Copy(context.Background(), cwd, []domain.CopySpec{
		{From: "public", To: "dist", Exclude: []string{"**/*.psd"}},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cwd, "dist", "index.html"))
	assert.FileExists(t, filepath.Join(cwd, "dist", "img", "logo.svg"))
	assert.NoFileExists(t, filepath.Join(cwd, "dist", "img", "raw.psd"))
}

func TestHousekeeper_Copy_Glob(t *testing.T) {
	cwd := t.TempDir()
	writeTree(t, cwd, "assets/fonts/a.woff2", "assets/fonts/b.ttf", "assets/readme.md")

	h := fs.NewHousekeeper(fs.NewWalker())
	err := h.Copy(context.Background(), cwd, []domain.CopySpec{
		{From: "assets/**/*.woff2", To: "dist"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cwd, "dist", "fonts", "a.woff2"))
	require.NoError(t, err)
	assert.Equal(t, "assets/fonts/a.woff2", string(data))
	assert.NoFileExists(t, filepath.Join(cwd, "dist", "fonts", "b.ttf"))
}

func TestHousekeeper_Copy_SingleFile(t *testing.T) {
	cwd := t.TempDir()
	writeTree(t, cwd, "LICENSE")

	h := fs.NewHousekeeper(fs.NewWalker())
	require.NoError(t, h.Copy(context.Background(), cwd, []domain.CopySpec{{From: "LICENSE", To: "dist"}}))
	assert.FileExists(t, filepath.Join(cwd, "dist", "LICENSE"))
}
