package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

// Alias resolves bare imports matching a compilerOptions.paths pattern.
func Alias(resolver ports.ModuleResolver, types domain.TypeMetadata, logger ports.Logger) Transform {
	t := Transform{Name: "alias"}
	if len(types.Paths) == 0 {
		return t
	}

	t.Resolve = Hook[ResolveFunc]{Fn: func(_ context.Context, specifier, importer string) (string, bool, error) {
		if importer == "" || strings.HasPrefix(specifier, "\x00") || strings.HasPrefix(specifier, ".") || filepath.IsAbs(specifier) {
			return "", false, nil
		}
		if !resolver.Matches(specifier, types) {
			return "", false, nil
		}
		path, ok := resolver.Resolve(specifier, importer, types)
		if !ok {
			return "", false, nil
		}
		logger.Debug("resolved " + specifier + " to " + path)
		return path, true, nil
	}}
	return t
}
