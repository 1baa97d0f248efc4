package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/watcher"
	"go.trai.ch/pack/internal/core/domain"
)

func TestDigests_Changed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: production\n"), domain.FilePerm))

	d := watcher.NewDigests()
	d.Seed([]string{path})

	t.Run("same content is not a change", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("mode: production\n"), domain.FilePerm))
		_, changed := d.Changed(path)
		assert.False(t, changed)
	})

	t.Run("new content is a change once", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("mode: development\n"), domain.FilePerm))
		kind, changed := d.Changed(path)
		assert.True(t, changed)
		assert.Equal(t, domain.ChangeUpdated, kind)
		_, changed = d.Changed(path)
		assert.False(t, changed)
	})

	t.Run("removal is a change", func(t *testing.T) {
		require.NoError(t, os.Remove(path))
		kind, changed := d.Changed(path)
		assert.True(t, changed)
		assert.Equal(t, domain.ChangeRemoved, kind)
		_, changed = d.Changed(path)
		assert.False(t, changed)
	})

	t.Run("creation is a change", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("mode: production\n"), domain.FilePerm))
		kind, changed := d.Changed(path)
		assert.True(t, changed)
		assert.Equal(t, domain.ChangeAdded, kind)
	})
}

func TestDigests_Directory(t *testing.T) {
	d := watcher.NewDigests()
	kind, changed := d.Changed(t.TempDir())
	assert.True(t, changed)
	assert.Equal(t, domain.ChangeUpdated, kind)
}
