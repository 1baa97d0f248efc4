// Package orchestrator creates and drives one build task per requested format.
package orchestrator

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/engine/external"
	"go.trai.ch/pack/internal/engine/pipeline"
	"go.trai.ch/pack/internal/engine/task"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Run is the input of one orchestrator call.
type Run struct {
	Config  *domain.ResolvedConfig
	Package domain.PackageMetadata
	Types   domain.TypeMetadata
	Table   *domain.DefineTable
}

// Orchestrator owns the live tasks. Each RunTasks call replaces them.
type Orchestrator struct {
	bundler      ports.Bundler
	declarations ports.Bundler
	transpiler   ports.Transpiler
	resolver     ports.ModuleResolver
	hooks        ports.HookRunner
	logger       ports.Logger
	tracer       ports.Tracer

	mu    sync.Mutex
	tasks []*task.Task
}

// NewOrchestrator creates a new Orchestrator. Declaration formats build with
// declarations, every other format with bundler.
func NewOrchestrator(
	bundler ports.Bundler,
	declarations ports.Bundler,
	transpiler ports.Transpiler,
	resolver ports.ModuleResolver,
	hooks ports.HookRunner,
	logger ports.Logger,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		bundler:      bundler,
		declarations: declarations,
		transpiler:   transpiler,
		resolver:     resolver,
		hooks:        hooks,
		logger:       logger,
		tracer:       tracer,
	}
}

// RunTasks stops the previous tasks, creates one task per requested format and
// runs them, concurrently when the configuration is parallel. In parallel mode
// every task settles before the first error is returned; in sequential mode
// the first error stops the sequence.
func (o *Orchestrator) RunTasks(ctx context.Context, run Run) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeTasks()

	tasks, err := o.createTasks(run)
	if err != nil {
		return err
	}
	o.tasks = tasks

	if run.Config.Parallel {
		// A plain group: a derived context would end watch sessions once Wait returns.
		var g errgroup.Group
		for _, t := range tasks {
			g.Go(func() error { return o.runTask(ctx, t) })
		}
		return g.Wait()
	}

	for _, t := range tasks {
		if err := o.runTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Close stops every task and releases its cache.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closeTasks()
}

// Reports returns a snapshot of every task in format order.
func (o *Orchestrator) Reports() []task.Report {
	o.mu.Lock()
	tasks := slices.Clone(o.tasks)
	o.mu.Unlock()

	reports := make([]task.Report, len(tasks))
	for i, t := range tasks {
		reports[i] = t.Report()
	}
	return reports
}

func (o *Orchestrator) createTasks(run Run) ([]*task.Task, error) {
	cfg := run.Config
	classifier, err := external.New(cfg)
	if err != nil {
		return nil, domain.Fail(domain.KindConfig, err)
	}
	declarations, err := external.NewDeclaration(cfg)
	if err != nil {
		return nil, domain.Fail(domain.KindConfig, err)
	}

	seen := make(map[domain.Format]struct{}, len(cfg.Formats))
	tasks := make([]*task.Task, 0, len(cfg.Formats))
	for _, format := range cfg.Formats {
		if _, dup := seen[format]; dup {
			continue
		}
		seen[format] = struct{}{}

		spec, ok := domain.LookupFormat(format)
		if !ok {
			return nil, domain.Fail(domain.KindConfig, zerr.With(domain.ErrInvalidFormat, "format", string(format)))
		}

		tc := &domain.TaskConfig{
			Config:  cfg,
			Spec:    spec,
			Primary: cfg.IsPrimary(format),
			Package: run.Package,
			Types:   run.Types,
		}
		logger := o.logger.WithFormat(format)

		bundler, isExternal := o.bundler, classifier.IsExternal
		if spec.Declaration {
			bundler, isExternal = o.declarations, declarations.IsExternal
		}

		tasks = append(tasks, task.New(task.Options{
			Config:   tc,
			Bundler:  bundler,
			External: isExternal,
			Pipeline: pipeline.ForTask(pipeline.Options{
				Task:       tc,
				Table:      run.Table,
				Resolver:   o.resolver,
				Transpiler: o.transpiler,
				Logger:     logger,
			}),
			Hooks:  o.hooks,
			Logger: logger,
		}))
	}
	return tasks, nil
}

func (o *Orchestrator) runTask(ctx context.Context, t *task.Task) error {
	ctx, span := o.tracer.Start(ctx, "task "+string(t.Format()))
	defer span.End()
	span.SetAttribute("pack.format", string(t.Format()))

	if err := t.Run(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// closeTasks stops and discards the current tasks. Callers hold mu.
func (o *Orchestrator) closeTasks() error {
	var errs []error
	for _, t := range o.tasks {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	o.tasks = nil
	return errors.Join(errs...)
}
