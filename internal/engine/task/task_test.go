package task_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/core/ports/mocks"
	"go.trai.ch/pack/internal/engine/task"
	"go.uber.org/mock/gomock"
)

type fakeCache struct{ released atomic.Int32 }

func (c *fakeCache) Release() { c.released.Add(1) }

type fixture struct {
	bundler *mocks.MockBundler
	hooks   *mocks.MockHookRunner
	logger  *mocks.MockLogger
	cfg     *domain.TaskConfig
}

func newFixture(t *testing.T, format domain.Format) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	spec, ok := domain.LookupFormat(format)
	require.True(t, ok)
	return &fixture{
		bundler: mocks.NewMockBundler(ctrl),
		hooks:   mocks.NewMockHookRunner(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		cfg: &domain.TaskConfig{
			Config: &domain.ResolvedConfig{
				Cwd:    "/project",
				Mode:   domain.ModeProduction,
				Target: domain.TargetNode,
				Input:  []domain.InputEntry{{Name: "main", Path: "src/main.ts"}},
				Output: domain.Output{
					Dir:       "dist",
					Name:      "lib",
					EntryName: "[name].[ext]",
					ChunkName: "[hash].[ext]",
					Minify:    true,
					Treeshake: true,
				},
				WatchOptions: domain.WatchOptions{Ignore: []string{"**/node_modules/**"}},
			},
			Spec:    spec,
			Primary: format == domain.FormatCJS,
			Types:   domain.TypeMetadata{Target: "es2019"},
		},
	}
}

func (f *fixture) task() *task.Task {
	return task.New(task.Options{
		Config:   f.cfg,
		Bundler:  f.bundler,
		External: func(string, string) bool { return false },
		Hooks:    f.hooks,
		Logger:   f.logger,
	})
}

func TestRun_OneShot(t *testing.T) {
	f := newFixture(t, domain.FormatCJS)
	f.cfg.Config.Hooks = domain.HookCommands{BeforeFormatBuild: "echo before", AfterFormatBuild: "echo after"}
	cache := &fakeCache{}

	gomock.InOrder(
		f.hooks.EXPECT().Run(gomock.Any(), "/project", "echo before", []string{"PACK_FORMAT=cjs"}).Return(nil),
		f.logger.EXPECT().Info("Build src/main.ts"),
		f.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, opts ports.BundleOptions) (domain.BuildResult, error) {
				assert.Equal(t, "/project", opts.Cwd)
				assert.Equal(t, filepath.Join("/project", "dist"), opts.OutDir)
				assert.Equal(t, "[name].js", opts.EntryNames)
				assert.Equal(t, "[hash].js", opts.ChunkNames)
				assert.Equal(t, "js", opts.Extension)
				assert.Equal(t, domain.EngineCJS, opts.Format.Engine)
				assert.Equal(t, domain.TargetNode, opts.Platform)
				assert.Equal(t, "es2019", opts.Target)
				assert.Equal(t, "lib", opts.GlobalName)
				assert.True(t, opts.Minify)
				assert.False(t, opts.Sourcemap)
				assert.NotNil(t, opts.External)
				assert.Equal(t, []domain.InputEntry{{Name: "main", Path: "src/main.ts"}}, opts.Entries)
				return domain.BuildResult{
					Files:    []domain.OutputFile{{Path: "/project/dist/main.js", Size: 10}, {Path: "/project/dist/a.js", Size: 5}},
					Duration: 12 * time.Millisecond,
					Cache:    cache,
				}, nil
			}),
		f.logger.EXPECT().Info("Finished in 12ms"),
		f.hooks.EXPECT().Run(gomock.Any(), "/project", "echo after", []string{"PACK_FORMAT=cjs"}).Return(nil),
	)

	tk := f.task()
	require.NoError(t, tk.Run(context.Background()))

	report := tk.Report()
	assert.Equal(t, domain.FormatCJS, report.Format)
	assert.Equal(t, task.StateDone, report.State)
	assert.Equal(t, 15, report.Bytes)
	assert.Equal(t, 12*time.Millisecond, report.Duration)
	assert.NoError(t, report.Err)

	require.NoError(t, tk.Close())
	assert.Equal(t, int32(1), cache.released.Load())
}

func TestRun_OneShotReleasesPreviousCache(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	first, second := &fakeCache{}, &fakeCache{}

	f.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(domain.BuildResult{Cache: first}, nil)
	f.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, opts ports.BundleOptions) (domain.BuildResult, error) {
			assert.Equal(t, int32(1), first.released.Load())
			assert.Equal(t, "[name].mjs", opts.EntryNames)
			return domain.BuildResult{Cache: second}, nil
		})

	tk := f.task()
	require.NoError(t, tk.Run(context.Background()))
	require.NoError(t, tk.Run(context.Background()))
	assert.Equal(t, int32(1), first.released.Load())
	assert.Equal(t, int32(0), second.released.Load())

	require.NoError(t, tk.Close())
	assert.Equal(t, int32(1), second.released.Load())
}

func TestRun_ManyEntries(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Input = []domain.InputEntry{
		{Name: "a", Path: "a.ts"}, {Name: "b", Path: "b.ts"}, {Name: "c", Path: "c.ts"}, {Name: "d", Path: "d.ts"},
		{Name: "only", Path: "only.ts", Formats: []domain.Format{domain.FormatCJS}},
	}

	f.logger.EXPECT().Info("Build 4 entries")
	f.logger.EXPECT().Info("Finished in 0ms")
	f.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, opts ports.BundleOptions) (domain.BuildResult, error) {
			assert.Len(t, opts.Entries, 4)
			return domain.BuildResult{}, nil
		})

	require.NoError(t, f.task().Run(context.Background()))
}

func TestRun_NoEntries(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Input = []domain.InputEntry{{Name: "only", Path: "only.ts", Formats: []domain.Format{domain.FormatCJS}}}

	tk := f.task()
	err := tk.Run(context.Background())
	require.ErrorContains(t, err, domain.ErrNoInput.Error())
	assert.Equal(t, task.StateError, tk.State())
}

func TestRun_BuildFailure(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Hooks.AfterFormatBuild = "echo after"
	f.logger.EXPECT().Info("Build src/main.ts")
	f.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(domain.BuildResult{}, domain.ErrBuildFailed)

	tk := f.task()
	err := tk.Run(context.Background())
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())

	var failure *domain.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.KindTask, failure.Kind)

	report := tk.Report()
	assert.Equal(t, task.StateError, report.State)
	assert.Equal(t, err, report.Err)
}

func TestRun_HookFailure(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Hooks.BeforeFormatBuild = "exit 1"
	f.hooks.EXPECT().Run(gomock.Any(), "/project", "exit 1", []string{"PACK_FORMAT=esm"}).Return(errors.New("exit status 1"))

	err := f.task().Run(context.Background())
	var failure *domain.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, domain.KindHook, failure.Kind)
}

func TestRun_Watch(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Watch = true
	f.cfg.Config.Hooks.AfterFormatBuild = "echo after"
	ctrl := gomock.NewController(t)
	handle := mocks.NewMockWatchHandle(ctrl)
	events := make(chan domain.BundleEvent, 8)
	cache := &fakeCache{}

	f.bundler.EXPECT().Watch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, opts ports.BundleOptions) (ports.WatchHandle, error) {
			assert.Equal(t, []string{"**/node_modules/**"}, opts.WatchIgnore)
			return handle, nil
		})
	handle.EXPECT().Events().Return((<-chan domain.BundleEvent)(events))
	handle.EXPECT().Close().DoAndReturn(func() error {
		close(events)
		return nil
	})

	changed := make(chan struct{})
	f.logger.EXPECT().Info("Build src/main.ts")
	f.logger.EXPECT().Info("Build finished in 30ms")
	f.logger.EXPECT().Info("Watching for changes ...")
	f.logger.EXPECT().Info("src/util.ts changed").Do(func(string) { close(changed) })
	f.hooks.EXPECT().Run(gomock.Any(), "/project", "echo after", []string{"PACK_FORMAT=esm"}).Return(nil)

	events <- domain.BundleEvent{Kind: domain.EventStart}
	events <- domain.BundleEvent{
		Kind:     domain.EventEnd,
		Duration: 30 * time.Millisecond,
		Files:    []domain.OutputFile{{Path: "/project/dist/main.mjs", Size: 7}},
		Cache:    cache,
	}

	tk := f.task()
	require.NoError(t, tk.Run(context.Background()))
	assert.Equal(t, task.StateWatching, tk.State())
	assert.Equal(t, 7, tk.Report().Bytes)

	events <- domain.BundleEvent{Kind: domain.EventIdle}
	events <- domain.BundleEvent{Kind: domain.EventChange, Path: "/project/src/util.ts", Change: domain.ChangeUpdated}
	<-changed

	require.NoError(t, tk.Stop())
	require.NoError(t, tk.Stop())
	assert.Equal(t, task.StateIdle, tk.State())
	assert.Equal(t, int32(1), cache.released.Load())
}

func TestRun_WatchFirstError(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Watch = true
	handle := mocks.NewMockWatchHandle(gomock.NewController(t))
	events := make(chan domain.BundleEvent, 2)

	f.bundler.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(handle, nil)
	handle.EXPECT().Events().Return((<-chan domain.BundleEvent)(events))
	handle.EXPECT().Close().DoAndReturn(func() error {
		close(events)
		return nil
	})
	f.logger.EXPECT().Error(gomock.Any())

	events <- domain.BundleEvent{Kind: domain.EventError, Err: domain.ErrBuildFailed}

	tk := f.task()
	err := tk.Run(context.Background())
	require.ErrorContains(t, err, domain.ErrBuildFailed.Error())
	assert.Equal(t, task.StateError, tk.State())
	require.NoError(t, tk.Close())
}

func TestRun_WatchClosedEarly(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	f.cfg.Config.Watch = true
	handle := mocks.NewMockWatchHandle(gomock.NewController(t))
	events := make(chan domain.BundleEvent)
	close(events)

	f.bundler.EXPECT().Watch(gomock.Any(), gomock.Any()).Return(handle, nil)
	handle.EXPECT().Events().Return((<-chan domain.BundleEvent)(events))
	handle.EXPECT().Close().Return(nil)

	tk := f.task()
	err := tk.Run(context.Background())
	require.ErrorContains(t, err, domain.ErrTaskStopped.Error())
	require.NoError(t, tk.Stop())
}

func TestStop_Idle(t *testing.T) {
	f := newFixture(t, domain.FormatESM)
	tk := f.task()
	require.NoError(t, tk.Stop())
	assert.Equal(t, task.StateIdle, tk.State())
}
