package dotenv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/dotenv"
	"go.trai.ch/pack/internal/core/domain"
)

func TestLoader_Load_Cascade(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	prod := filepath.Join(dir, ".env.production")
	require.NoError(t, os.WriteFile(env, []byte("API_URL=http://localhost\nNAME=pack\n"), domain.FilePerm))
	require.NoError(t, os.WriteFile(prod, []byte("API_URL=https://example.com\n"), domain.FilePerm))

	values, read, err := dotenv.NewLoader().Load([]string{env, local, prod})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"API_URL": "https://example.com", "NAME": "pack"}, values)
	assert.Equal(t, []string{env, prod}, read)
}

func TestLoader_Load_DoesNotTouchEnvironment(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("PACK_DOTENV_PROBE=1\n"), domain.FilePerm))

	_, _, err := dotenv.NewLoader().Load([]string{env})
	require.NoError(t, err)

	_, set := os.LookupEnv("PACK_DOTENV_PROBE")
	assert.False(t, set)
}

func TestLoader_Load_Unreadable(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("A=1\n"), domain.FilePerm))
	broken := filepath.Join(dir, ".env.local")
	require.NoError(t, os.Mkdir(broken, domain.DirPerm))

	values, read, err := dotenv.NewLoader().Load([]string{env, broken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrDotEnvReadFailed.Error())
	assert.Equal(t, map[string]string{"A": "1"}, values)
	assert.Equal(t, []string{env}, read)
}
