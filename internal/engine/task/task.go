// Package task runs the build of one output format.
package task

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of a task.
type State string

const (
	StateIdle     State = "idle"
	StateBuilding State = "building"
	StateWatching State = "watching"
	StateDone     State = "done"
	StateError    State = "error"
)

// formatEnv is the environment variable naming the format for format hooks.
const formatEnv = "PACK_FORMAT"

// maxListedEntries is the largest entry count logged by name.
const maxListedEntries = 3

// Options are the collaborators of one task.
type Options struct {
	Config   *domain.TaskConfig
	Bundler  ports.Bundler
	Pipeline ports.Pipeline
	External ports.ExternalFunc
	Hooks    ports.HookRunner
	Logger   ports.Logger
}

// Report is a snapshot of a task for the run summary.
type Report struct {
	Format   domain.Format
	State    State
	Files    []domain.OutputFile
	Bytes    int
	Duration time.Duration
	Err      error
}

// Task owns the lifecycle of one format: a one-shot build, or a watch session
// rebuilding on every source change.
type Task struct {
	opts Options

	// run serializes Run and Stop so no two builds of a task overlap.
	run sync.Mutex

	mu       sync.RWMutex
	state    State
	handle   ports.WatchHandle
	done     chan struct{}
	cache    domain.BuildCache
	files    []domain.OutputFile
	duration time.Duration
	err      error
}

// New creates an idle task.
func New(opts Options) *Task {
	return &Task{opts: opts, state: StateIdle}
}

// Format returns the task's format.
func (t *Task) Format() domain.Format {
	return t.opts.Config.Format()
}

// State returns the current state.
func (t *Task) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Report returns a snapshot of the task.
func (t *Task) Report() Report {
	t.mu.RLock()
	defer t.mu.RUnlock()
	bytes := 0
	for _, f := range t.files {
		bytes += f.Size
	}
	return Report{
		Format:   t.Format(),
		State:    t.state,
		Files:    t.files,
		Bytes:    bytes,
		Duration: t.duration,
		Err:      t.err,
	}
}

// Run builds the format once or, in watch mode, starts a watch session and
// returns after its first build settles. The session keeps running until Stop.
func (t *Task) Run(ctx context.Context) error {
	t.run.Lock()
	defer t.run.Unlock()

	t.closeHandle()
	t.releaseCache()

	cfg := t.opts.Config
	entries := cfg.Entries()
	if len(entries) == 0 {
		return t.fail(domain.ErrNoInput)
	}
	opts := t.bundleOptions(entries)

	if err := t.hook(ctx, cfg.Config.Hooks.BeforeFormatBuild); err != nil {
		t.setState(StateError, err)
		return err
	}

	t.setState(StateBuilding, nil)
	if cfg.Config.Watch {
		return t.watch(ctx, opts)
	}

	t.logEntries(entries)
	res, err := t.opts.Bundler.Build(ctx, opts)
	if err != nil {
		return t.fail(err)
	}

	t.mu.Lock()
	t.cache = res.Cache
	t.files = res.Files
	t.duration = res.Duration
	t.state = StateDone
	t.mu.Unlock()
	t.opts.Logger.Info("Finished in " + millis(res.Duration))

	if err := t.hook(ctx, cfg.Config.Hooks.AfterFormatBuild); err != nil {
		t.setState(StateError, err)
		return err
	}
	return nil
}

// Stop closes the watch session, if any. It is idempotent.
func (t *Task) Stop() error {
	t.run.Lock()
	defer t.run.Unlock()
	return t.closeHandle()
}

// Close stops the task and releases its cache.
func (t *Task) Close() error {
	err := t.Stop()
	t.releaseCache()
	return err
}

func (t *Task) watch(ctx context.Context, opts ports.BundleOptions) error {
	handle, err := t.opts.Bundler.Watch(ctx, opts)
	if err != nil {
		return t.fail(err)
	}

	first := make(chan error, 1)
	done := make(chan struct{})
	t.mu.Lock()
	t.handle = handle
	t.done = done
	t.state = StateWatching
	t.mu.Unlock()

	go t.consume(ctx, handle, first, done)

	select {
	case err := <-first:
		return err
	case <-done:
		return t.fail(domain.ErrTaskStopped)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// consume handles the events of one watch session until its channel closes.
func (t *Task) consume(ctx context.Context, handle ports.WatchHandle, first chan<- error, done chan<- struct{}) {
	defer close(done)
	settled := false
	settle := func(err error) {
		if !settled {
			settled = true
			first <- err
		}
	}

	for event := range handle.Events() {
		switch event.Kind {
		case domain.EventStart:
			t.setState(StateBuilding, nil)
			t.logEntries(t.opts.Config.Entries())
		case domain.EventEnd:
			t.mu.Lock()
			if event.Cache != nil {
				t.cache = event.Cache
			}
			t.files = event.Files
			t.duration = event.Duration
			t.state = StateWatching
			t.err = nil
			t.mu.Unlock()
			t.opts.Logger.Info("Build finished in " + millis(event.Duration))
			settle(nil)
			if err := t.hook(ctx, t.opts.Config.Config.Hooks.AfterFormatBuild); err != nil {
				t.opts.Logger.Error(err)
			}
		case domain.EventError:
			err := t.taskError(event.Err)
			t.setState(StateError, err)
			t.opts.Logger.Error(err)
			settle(err)
		case domain.EventIdle:
			t.opts.Logger.Info("Watching for changes ...")
		case domain.EventChange:
			t.opts.Logger.Info(t.relative(event.Path) + " " + string(event.Change))
		}
	}
}

// releaseCache drops the cache left by the previous build.
func (t *Task) releaseCache() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cache != nil {
		t.cache.Release()
		t.cache = nil
	}
}

// closeHandle ends a running watch session and releases the cache tied to it.
func (t *Task) closeHandle() error {
	t.mu.Lock()
	handle, done := t.handle, t.done
	t.handle, t.done = nil, nil
	t.mu.Unlock()
	if handle == nil {
		return nil
	}

	err := handle.Close()
	<-done

	t.releaseCache()

	t.mu.Lock()
	if t.state == StateWatching || t.state == StateBuilding {
		t.state = StateIdle
	}
	t.mu.Unlock()
	return err
}

func (t *Task) bundleOptions(entries []domain.InputEntry) ports.BundleOptions {
	cfg := t.opts.Config
	res := cfg.Config

	outDir := res.Output.Dir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(res.Cwd, outDir)
	}

	return ports.BundleOptions{
		Cwd:         res.Cwd,
		Format:      cfg.Spec,
		Entries:     entries,
		OutDir:      outDir,
		EntryNames:  cfg.EntryName(),
		ChunkNames:  cfg.ChunkName(),
		Extension:   cfg.Format().Extension(cfg.Primary),
		GlobalName:  res.Output.Name,
		Platform:    res.Target,
		Target:      cfg.Types.LanguageLevel(),
		Sourcemap:   res.Output.Sourcemap,
		Minify:      res.Output.Minify,
		Treeshake:   res.Output.Treeshake,
		Types:       cfg.Types,
		External:    t.opts.External,
		Pipeline:    t.opts.Pipeline,
		Logger:      t.opts.Logger,
		WatchIgnore: res.WatchOptions.Ignore,
	}
}

// hook runs a format hook command with the format in the environment.
func (t *Task) hook(ctx context.Context, command string) error {
	if command == "" || t.opts.Hooks == nil {
		return nil
	}
	env := []string{formatEnv + "=" + string(t.Format())}
	if err := t.opts.Hooks.Run(ctx, t.opts.Config.Config.Cwd, command, env); err != nil {
		return domain.Fail(domain.KindHook, zerr.With(err, "format", string(t.Format())))
	}
	return nil
}

func (t *Task) logEntries(entries []domain.InputEntry) {
	if len(entries) > maxListedEntries {
		t.opts.Logger.Info("Build " + strconv.Itoa(len(entries)) + " entries")
		return
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = t.relative(entry.Path)
	}
	t.opts.Logger.Info("Build " + strings.Join(names, ", "))
}

// relative returns path relative to the project root when it lies inside it.
func (t *Task) relative(path string) string {
	cwd := t.opts.Config.Config.Cwd
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func (t *Task) taskError(err error) error {
	return domain.Fail(domain.KindTask, zerr.With(err, "format", string(t.Format())))
}

func (t *Task) fail(err error) error {
	err = t.taskError(err)
	t.setState(StateError, err)
	return err
}

func (t *Task) setState(state State, err error) {
	t.mu.Lock()
	t.state = state
	if err != nil {
		t.err = err
	}
	t.mu.Unlock()
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
