package ports

import (
	"context"

	"go.trai.ch/pack/internal/core/domain"
)

// Housekeeper cleans and copies files around the build.
//
//go:generate mockgen -source=housekeeper.go -destination=mocks/mock_housekeeper.go -package=mocks
type Housekeeper interface {
	Clean(ctx context.Context, cwd string, specs []domain.CleanSpec) error
	Copy(ctx context.Context, cwd string, specs []domain.CopySpec) error
}

// HookRunner runs hook commands.
type HookRunner interface {
	// Run executes command in cwd with env appended to the process environment.
	Run(ctx context.Context, cwd, command string, env []string) error
}
