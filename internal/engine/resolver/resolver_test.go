package resolver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.trai.ch/pack/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func noEnv(string) (string, bool) { return "", false }

type fixture struct {
	loader   *mocks.MockConfigLoader
	metadata *mocks.MockMetadataLoader
	resolver *resolver.Resolver
}

func newFixture(t *testing.T, pkg domain.PackageMetadata, types domain.TypeMetadata) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		metadata: mocks.NewMockMetadataLoader(ctrl),
	}
	f.metadata.EXPECT().LoadPackage(gomock.Any()).Return(pkg, nil).AnyTimes()
	f.metadata.EXPECT().LoadTypes(gomock.Any()).Return(types, nil).AnyTimes()
	f.resolver = resolver.NewResolver(f.loader, f.metadata)
	f.resolver.SetLookupEnv(noEnv)
	return f
}

// withConfig makes the loader discover a config file yielding user.
func (f *fixture) withConfig(t *testing.T, user domain.Config) *mocks.MockConfigProvider {
	t.Helper()
	provider := mocks.NewMockConfigProvider(gomock.NewController(t))
	f.loader.EXPECT().Find(gomock.Any()).Return("/project/pack.yaml", nil)
	f.loader.EXPECT().Load("/project/pack.yaml").Return(provider, nil)
	provider.EXPECT().Provide(gomock.Any()).Return(user, nil).AnyTimes()
	return provider
}

func (f *fixture) withoutConfig() {
	f.loader.EXPECT().Find(gomock.Any()).Return("", nil)
}

func TestResolve_Mode(t *testing.T) {
	tests := []struct {
		name      string
		nodeEnv   string
		overrides domain.Config
		want      domain.Mode
	}{
		{name: "watch defaults to development", overrides: domain.Config{Watch: ptr(true)}, want: domain.ModeDevelopment},
		{name: "build defaults to production", want: domain.ModeProduction},
		{name: "NODE_ENV development", nodeEnv: "development", want: domain.ModeDevelopment},
		{name: "NODE_ENV other", nodeEnv: "test", overrides: domain.Config{Watch: ptr(true)}, want: domain.ModeProduction},
		{name: "explicit wins", nodeEnv: "development", overrides: domain.Config{Mode: ptr(domain.ModeProduction)}, want: domain.ModeProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.PackageMetadata{}, domain.TypeMetadata{})
			f.withoutConfig()
			f.resolver.SetLookupEnv(func(key string) (string, bool) {
				if key == "NODE_ENV" && tt.nodeEnv != "" {
					return tt.nodeEnv, true
				}
				return "", false
			})

			res, err := f.resolver.Resolve(t.TempDir(), tt.overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Config.Mode)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	f := newFixture(t, domain.PackageMetadata{Name: "lib"}, domain.TypeMetadata{})
	f.withoutConfig()

	cwd := t.TempDir()
	res, err := f.resolver.Resolve(cwd, domain.Config{})
	require.NoError(t, err)
	cfg := res.Config

	assert.Equal(t, cwd, cfg.Cwd)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, domain.TargetNode, cfg.Target)
	assert.Equal(t, []domain.Format{domain.FormatCJS}, cfg.Formats)
	assert.Equal(t, domain.FormatCJS, cfg.Primary)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, []domain.InputEntry{{Name: "main", Path: "source/main.ts"}}, cfg.Input)
	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.Equal(t, "lib", cfg.Output.Name)
	assert.Equal(t, "[name].[ext]", cfg.Output.EntryName)
	assert.Equal(t, "[hash].[ext]", cfg.Output.ChunkName)
	assert.False(t, cfg.Output.Sourcemap)
	assert.True(t, cfg.Output.Minify)
	assert.True(t, cfg.Output.Treeshake)
	assert.True(t, cfg.Output.ESMShims)
	assert.Equal(t, domain.WatchListOptions{Config: true, PackageJSON: true, TSConfig: true, DotEnv: true}, cfg.WatchList)
	assert.Equal(t, domain.WatchOptions{Debounce: 250 * time.Millisecond, Ignore: []string{"**/node_modules/**"}}, cfg.WatchOptions)
	assert.Equal(t, domain.DefineRuntime{Mode: true}, cfg.DefineRuntime)
	assert.Equal(t, domain.DotEnv{Enabled: true}, cfg.DotEnv)
	assert.False(t, cfg.CreateEnv)
	assert.Equal(t, []domain.CleanSpec{{Target: "dist"}}, cfg.Clean)
	assert.Nil(t, cfg.Copy)
	assert.Equal(t, domain.LogInfo, cfg.LogLevel)
}

func TestResolve_FormatsAndPrimary(t *testing.T) {
	tests := []struct {
		name        string
		pkg         domain.PackageMetadata
		user        domain.Config
		wantFormats []domain.Format
		wantPrimary domain.Format
		wantErr     error
	}{
		{
			name:        "module package",
			pkg:         domain.PackageMetadata{Type: "module"},
			wantFormats: []domain.Format{domain.FormatESM},
			wantPrimary: domain.FormatESM,
		},
		{
			name:        "typed package adds declarations",
			pkg:         domain.PackageMetadata{Type: "module", Types: "dist/main.d.ts"},
			wantFormats: []domain.Format{domain.FormatESM, domain.FormatDTS},
			wantPrimary: domain.FormatESM,
		},
		{
			name:        "commonjs package prefers cjs",
			pkg:         domain.PackageMetadata{Type: "commonjs"},
			user:        domain.Config{Format: []domain.Format{domain.FormatESM, domain.FormatCJS}},
			wantFormats: []domain.Format{domain.FormatESM, domain.FormatCJS},
			wantPrimary: domain.FormatCJS,
		},
		{
			name:        "first non declaration format",
			pkg:         domain.PackageMetadata{Type: "module"},
			user:        domain.Config{Format: []domain.Format{domain.FormatDTS, domain.FormatUMD, domain.FormatIIFE}},
			wantFormats: []domain.Format{domain.FormatDTS, domain.FormatUMD, domain.FormatIIFE},
			wantPrimary: domain.FormatUMD,
		},
		{
			name:        "duplicates removed",
			user:        domain.Config{Format: []domain.Format{domain.FormatCJS, domain.FormatESM, domain.FormatCJS}},
			wantFormats: []domain.Format{domain.FormatCJS, domain.FormatESM},
			wantPrimary: domain.FormatCJS,
		},
		{
			name:        "explicit primary",
			user:        domain.Config{Format: []domain.Format{domain.FormatCJS, domain.FormatESM}, Primary: &domain.Primary{Format: domain.FormatESM}},
			wantFormats: []domain.Format{domain.FormatCJS, domain.FormatESM},
			wantPrimary: domain.FormatESM,
		},
		{
			name:        "primary disabled",
			user:        domain.Config{Primary: &domain.Primary{Disabled: true}},
			wantFormats: []domain.Format{domain.FormatCJS},
		},
		{
			name:    "primary not requested",
			user:    domain.Config{Format: []domain.Format{domain.FormatCJS}, Primary: &domain.Primary{Format: domain.FormatESM}},
			wantErr: domain.ErrInvalidPrimary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.pkg, domain.TypeMetadata{})
			f.withConfig(t, tt.user)

			res, err := f.resolver.Resolve(t.TempDir(), domain.Config{})
			if tt.wantErr != nil {
				require.ErrorContains(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormats, res.Config.Formats)
			assert.Equal(t, tt.wantPrimary, res.Config.Primary)
			assert.Equal(t, "/project/pack.yaml", res.Config.ConfigFile)
		})
	}
}

func TestResolve_OutputDir(t *testing.T) {
	cwd := t.TempDir()

	tests := []struct {
		name  string
		pkg   domain.PackageMetadata
		types domain.TypeMetadata
		want  string
	}{
		{name: "compiler outDir", pkg: domain.PackageMetadata{Main: "lib/index.js"}, types: domain.TypeMetadata{OutDir: filepath.Join(cwd, "build")}, want: "build"},
		{name: "package main", pkg: domain.PackageMetadata{Main: "./lib/index.js"}, want: "lib"},
		{name: "main in root", pkg: domain.PackageMetadata{Main: "index.js"}, want: "dist"},
		{name: "fallback", want: "dist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.pkg, tt.types)
			f.withoutConfig()

			res, err := f.resolver.Resolve(cwd, domain.Config{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Config.Output.Dir)
		})
	}
}

func TestResolve_InputProbing(t *testing.T) {
	cwd := t.TempDir()
	for _, name := range []string{"index.ts", "source/index.js", "src/index.ts"} {
		path := filepath.Join(cwd, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, nil, domain.FilePerm))
	}

	f := newFixture(t, domain.PackageMetadata{}, domain.TypeMetadata{})
	f.withoutConfig()

	res, err := f.resolver.Resolve(cwd, domain.Config{})
	require.NoError(t, err)
	assert.Equal(t, []domain.InputEntry{{Name: "index", Path: "src/index.ts"}}, res.Config.Input)
}

func TestResolve_ExternalDeps(t *testing.T) {
	pkg := domain.PackageMetadata{
		Dependencies:     []string{"a", "b"},
		DevDependencies:  []string{"vitest"},
		PeerDependencies: []string{"react"},
	}

	t.Run("node target expands every list", func(t *testing.T) {
		f := newFixture(t, pkg, domain.TypeMetadata{})
		f.withoutConfig()

		res, err := f.resolver.Resolve(t.TempDir(), domain.Config{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, res.Config.ExternalDeps)
		assert.Equal(t, []string{"vitest"}, res.Config.ExternalDevDeps)
		assert.Equal(t, []string{"react"}, res.Config.ExternalPeerDeps)
	})

	t.Run("browser target with explicit toggles", func(t *testing.T) {
		f := newFixture(t, pkg, domain.TypeMetadata{})
		f.withConfig(t, domain.Config{
			Target:           ptr(domain.TargetBrowser),
			ExternalDeps:     &domain.DepList{Enabled: true},
			ExternalPeerDeps: &domain.DepList{Enabled: true, Names: []string{"preact"}},
		})

		res, err := f.resolver.Resolve(t.TempDir(), domain.Config{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, res.Config.ExternalDeps)
		assert.Nil(t, res.Config.ExternalDevDeps)
		assert.Equal(t, []string{"preact"}, res.Config.ExternalPeerDeps)
	})
}

func TestResolve_Precedence(t *testing.T) {
	f := newFixture(t, domain.PackageMetadata{}, domain.TypeMetadata{})
	provider := mocks.NewMockConfigProvider(gomock.NewController(t))
	f.loader.EXPECT().Find(gomock.Any()).Return("/project/pack.yml", nil)
	f.loader.EXPECT().Load("/project/pack.yml").Return(provider, nil)

	var base domain.Config
	provider.EXPECT().Provide(gomock.Any()).DoAndReturn(func(b domain.Config) (domain.Config, error) {
		base = b
		return domain.Config{
			Target:     ptr(domain.TargetBrowser),
			Format:     []domain.Format{domain.FormatESM, domain.FormatCJS},
			Output:     domain.OutputConfig{Dir: ptr("lib"), Minify: ptr(false)},
			Define:     map[string]any{"A": 1, "B": 2},
			Clean:      &domain.Clean{Enabled: false},
			Copy:       &domain.Copy{Enabled: true, Specs: []domain.CopySpec{{From: "assets"}}},
			LoadDotEnv: &domain.DotEnv{Enabled: true, Files: []string{".env.ci"}},
		}, nil
	})

	overrides := domain.Config{
		Watch:  ptr(true),
		Format: []domain.Format{domain.FormatIIFE},
		Define: map[string]any{"B": 3},
	}

	res, err := f.resolver.Resolve(t.TempDir(), overrides)
	require.NoError(t, err)

	require.NotNil(t, base.Mode)
	assert.Equal(t, domain.ModeDevelopment, *base.Mode)
	assert.True(t, *base.Watch)
	assert.Equal(t, domain.TargetNode, *base.Target)

	cfg := res.Config
	assert.Equal(t, domain.ModeDevelopment, cfg.Mode)
	assert.Equal(t, domain.TargetBrowser, cfg.Target)
	assert.Equal(t, []domain.Format{domain.FormatIIFE}, cfg.Formats)
	assert.Equal(t, "lib", cfg.Output.Dir)
	assert.False(t, cfg.Output.Minify)
	assert.True(t, cfg.Output.Sourcemap)
	assert.Equal(t, map[string]any{"A": 1, "B": 3}, cfg.Define)
	assert.Nil(t, cfg.Clean)
	assert.Equal(t, []domain.CopySpec{{From: "assets", To: "lib"}}, cfg.Copy)
	assert.Equal(t, domain.DotEnv{Enabled: true, Files: []string{".env.ci"}}, cfg.DotEnv)
	assert.Nil(t, cfg.ExternalDeps)
}

func TestResolve_Errors(t *testing.T) {
	t.Run("loader failure", func(t *testing.T) {
		f := newFixture(t, domain.PackageMetadata{}, domain.TypeMetadata{})
		f.loader.EXPECT().Find(gomock.Any()).Return("/project/pack.yaml", nil)
		f.loader.EXPECT().Load("/project/pack.yaml").Return(nil, domain.ErrConfigParseFailed)

		_, err := f.resolver.Resolve(t.TempDir(), domain.Config{})
		require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})

	t.Run("package failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockConfigLoader(ctrl)
		metadata := mocks.NewMockMetadataLoader(ctrl)
		loader.EXPECT().Find(gomock.Any()).Return("", nil)
		metadata.EXPECT().LoadPackage(gomock.Any()).Return(domain.PackageMetadata{}, domain.ErrPackageNotFound)

		r := resolver.NewResolver(loader, metadata)
		r.SetLookupEnv(noEnv)
		_, err := r.Resolve(t.TempDir(), domain.Config{})
		require.ErrorContains(t, err, domain.ErrPackageNotFound.Error())
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(t, domain.PackageMetadata{}, domain.TypeMetadata{})
		provider := mocks.NewMockConfigProvider(gomock.NewController(t))
		f.loader.EXPECT().Find(gomock.Any()).Return("/project/pack.yaml", nil)
		f.loader.EXPECT().Load(gomock.Any()).Return(provider, nil)
		provider.EXPECT().Provide(gomock.Any()).Return(domain.Config{}, errors.New("boom"))

		_, err := f.resolver.Resolve(t.TempDir(), domain.Config{})
		require.ErrorContains(t, err, "boom")
	})
}
