package ports

import "go.trai.ch/pack/internal/core/domain"

// ModuleResolver implements the type-checker's path-alias resolution.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// Matches reports whether specifier matches a declared path alias.
	Matches(specifier string, types domain.TypeMetadata) bool
	// Resolve returns the file a specifier resolves to.
	Resolve(specifier, importer string, types domain.TypeMetadata) (string, bool)
}
