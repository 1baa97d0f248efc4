package pipeline

import (
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

// Options are the inputs of the standard pipeline of one task.
type Options struct {
	Task       *domain.TaskConfig
	Table      *domain.DefineTable
	Resolver   ports.ModuleResolver
	Transpiler ports.Transpiler
	Logger     ports.Logger
}

// ForTask assembles the standard transforms for the task's format in list order:
// alias, define, raw, shims, banner, shebang, transpile, size.
func ForTask(opts Options) *Pipeline {
	task := opts.Task
	cfg := task.Config

	if task.Spec.Declaration {
		return New(Banner(cfg.Output, opts.Logger), Size(opts.Logger))
	}

	transforms := []Transform{
		Alias(opts.Resolver, task.Types, opts.Logger),
		Define(opts.Table),
		Raw(),
	}
	if task.Spec.ModuleType == domain.ModuleES6 && cfg.Output.ESMShims {
		transforms = append(transforms, Shims(opts.Logger))
	}
	transforms = append(transforms,
		Banner(cfg.Output, opts.Logger),
		Shebang(opts.Logger),
		Transpile(opts.Transpiler, task.Spec, ports.TranspileOptions{
			ModuleType: task.Spec.ModuleType,
			Target:     task.Types.LanguageLevel(),
			Sourcemap:  cfg.Output.Sourcemap,
			GlobalName: cfg.Output.Name,
			Types:      task.Types,
		}),
		Size(opts.Logger),
	)
	return New(transforms...)
}
