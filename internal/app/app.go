// Package app implements the application layer for pack.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/engine/define"
	"go.trai.ch/pack/internal/engine/orchestrator"
	"go.trai.ch/pack/internal/engine/resolver"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	resolver     *resolver.Resolver
	defines      *define.Builder
	orchestrator *orchestrator.Orchestrator
	housekeeper  ports.Housekeeper
	hooks        ports.HookRunner
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       ports.Tracer
	out          io.Writer
}

// New creates a new App instance.
func New(
	res *resolver.Resolver,
	defines *define.Builder,
	orch *orchestrator.Orchestrator,
	housekeeper ports.Housekeeper,
	hooks ports.HookRunner,
	w ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		resolver:     res,
		defines:      defines,
		orchestrator: orch,
		housekeeper:  housekeeper,
		hooks:        hooks,
		watcher:      w,
		logger:       log,
		tracer:       tracer,
		out:          os.Stderr,
	}
}

// WithOutput sets the writer the summary table is rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// RunOptions configuration for the Run and Clean methods.
type RunOptions struct {
	// Cwd is the project root.
	Cwd string
	// Debug enables debug logging and the resolved configuration dump.
	Debug bool
	// Overrides take precedence over the project configuration.
	Overrides domain.Config
}

// session is what a successful build leaves for the watch supervisor.
type session struct {
	cwd      string
	watch    bool
	debounce time.Duration
	paths    []string
}

// Run builds every configured format. In watch mode it keeps rebuilding until
// ctx is done; failures after the first build are logged, not returned.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	opts = a.applyDebug(opts)

	s, err := a.build(ctx, opts, true)
	if err != nil || !s.watch {
		closeErr := a.orchestrator.Close()
		if err != nil {
			return err
		}
		return closeErr
	}
	defer func() { _ = a.orchestrator.Close() }()

	supervisor := NewSupervisor(a.watcher, a.logger, s.cwd, s.debounce, func(ctx context.Context) ([]string, error) {
		next, err := a.build(ctx, opts, false)
		if err != nil {
			return nil, err
		}
		return next.paths, nil
	})
	return supervisor.Run(ctx, s.paths)
}

// Clean removes the configured clean targets, the output directory when none are configured.
func (a *App) Clean(ctx context.Context, opts RunOptions) error {
	opts = a.applyDebug(opts)

	res, err := a.resolver.Resolve(opts.Cwd, opts.Overrides)
	if err != nil {
		return domain.Fail(domain.KindConfig, err)
	}
	cfg := res.Config
	a.logger.SetLevel(cfg.LogLevel)

	specs := cfg.Clean
	if len(specs) == 0 {
		specs = []domain.CleanSpec{{Target: cfg.Output.Dir}}
	}
	if err := a.housekeeper.Clean(ctx, cfg.Cwd, specs); err != nil {
		return domain.Fail(domain.KindFS, err)
	}

	targets := make([]string, len(specs))
	for i, spec := range specs {
		targets[i] = spec.Target
	}
	a.logger.Info("Cleaned " + strings.Join(targets, ", "))
	return nil
}

func (a *App) applyDebug(opts RunOptions) RunOptions {
	if opts.Debug {
		level := domain.LogDebug
		opts.Overrides.LogLevel = &level
		a.logger.SetLevel(level)
	}
	return opts
}

// build runs one pass: resolve, define, housekeeping, hooks and the tasks.
// A fatal pass is the top-level one; it logs the run banner and treats
// define problems as errors.
func (a *App) build(ctx context.Context, opts RunOptions, fatal bool) (session, error) {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "build")
	defer span.End()

	s, err := a.pass(ctx, opts, fatal, start)
	if err != nil {
		span.RecordError(err)
		return session{}, err
	}
	span.SetAttribute("pack.watch", s.watch)
	return s, nil
}

//nolint:cyclop // orchestration function
func (a *App) pass(ctx context.Context, opts RunOptions, fatal bool, start time.Time) (session, error) {
	res, err := a.resolver.Resolve(opts.Cwd, opts.Overrides)
	if err != nil {
		return session{}, domain.Fail(domain.KindConfig, err)
	}
	cfg := res.Config
	a.logger.SetLevel(cfg.LogLevel)

	if fatal {
		a.banner(cfg)
	}
	a.dump(res)

	defines, err := a.defines.Build(cfg, res.Package)
	if err != nil {
		return session{}, domain.Fail(domain.KindConfig, err)
	}
	if len(defines.Problems) > 0 {
		if fatal {
			return session{}, joinProblems(defines.Problems)
		}
		for _, problem := range defines.Problems {
			a.logger.Warn(problem.Error())
		}
	}

	if err := a.housekeeper.Clean(ctx, cfg.Cwd, cfg.Clean); err != nil {
		return session{}, domain.Fail(domain.KindFS, err)
	}
	if err := a.housekeeper.Copy(ctx, cfg.Cwd, cfg.Copy); err != nil {
		return session{}, domain.Fail(domain.KindFS, err)
	}

	if err := a.hook(ctx, cfg, cfg.Hooks.BeforeBuild); err != nil {
		return session{}, err
	}

	err = a.orchestrator.RunTasks(ctx, orchestrator.Run{
		Config:  cfg,
		Package: res.Package,
		Types:   res.Types,
		Table:   defines.Table,
	})
	if err != nil {
		return session{}, err
	}

	if err := a.hook(ctx, cfg, cfg.Hooks.AfterBuild); err != nil {
		return session{}, err
	}

	if !cfg.Watch {
		a.logger.Info("Finished in " + millis(time.Since(start)))
		if reports := a.orchestrator.Reports(); len(reports) > 1 {
			renderSummary(a.out, reports)
		}
	}

	return session{
		cwd:      cfg.Cwd,
		watch:    cfg.Watch,
		debounce: cfg.WatchOptions.Debounce,
		paths:    watchList(res, defines.EnvFiles),
	}, nil
}

func (a *App) hook(ctx context.Context, cfg *domain.ResolvedConfig, command string) error {
	if command == "" {
		return nil
	}
	return domain.Fail(domain.KindHook, a.hooks.Run(ctx, cfg.Cwd, command, nil))
}

func (a *App) banner(cfg *domain.ResolvedConfig) {
	formats := make([]string, len(cfg.Formats))
	for i, f := range cfg.Formats {
		formats[i] = string(f)
	}

	a.logger.Info("Mode " + string(cfg.Mode))
	a.logger.Info("Target " + string(cfg.Target))
	a.logger.Info("Format " + strings.Join(formats, ", "))
	if cfg.Primary != "" {
		a.logger.Info("Primary " + string(cfg.Primary))
	}
	if cfg.Watch {
		a.logger.Info("Watch true")
	}
}

// dump logs the resolved configuration and metadata as YAML at debug level.
func (a *App) dump(res resolver.Resolution) {
	if res.Config.LogLevel != domain.LogDebug {
		return
	}
	a.dumpSection("config", res.Config)
	a.dumpSection("package", res.Package)
	if res.Types.Path != "" {
		a.dumpSection("tsconfig", res.Types)
	}
}

func (a *App) dumpSection(name string, v any) {
	out, err := yaml.Marshal(v)
	if err != nil {
		a.logger.Debug("[" + name + "] " + err.Error())
		return
	}
	a.logger.Debug("[" + name + "]\n" + strings.TrimRight(string(out), "\n"))
}

func joinProblems(problems []error) error {
	if len(problems) == 1 {
		return problems[0]
	}
	return errors.Join(problems...)
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
