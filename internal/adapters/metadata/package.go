// Package metadata reads package.json and tsconfig.json.
package metadata

import (
	"encoding/json"
	"errors"
	"os"
	"slices"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataLoader = (*Loader)(nil)

// Loader implements ports.MetadataLoader.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

type packageFile struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Type                 string            `json:"type"`
	Main                 string            `json:"main"`
	Types                string            `json:"types"`
	Typings              string            `json:"typings"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// LoadPackage reads package.json in cwd.
func (l *Loader) LoadPackage(cwd string) (domain.PackageMetadata, error) {
	path := domain.PackagePath(cwd)

	// #nosec G304 -- fixed file name under the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.PackageMetadata{}, zerr.With(domain.ErrPackageNotFound, "path", path)
		}
		err = zerr.Wrap(err, domain.ErrPackageParseFailed.Error())
		return domain.PackageMetadata{}, zerr.With(err, "path", path)
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		err = zerr.Wrap(err, domain.ErrPackageParseFailed.Error())
		return domain.PackageMetadata{}, zerr.With(err, "path", path)
	}

	types := pkg.Types
	if types == "" {
		types = pkg.Typings
	}

	return domain.PackageMetadata{
		Path:                 path,
		Name:                 pkg.Name,
		Version:              pkg.Version,
		Type:                 pkg.Type,
		Main:                 pkg.Main,
		Types:                types,
		Dependencies:         sortedNames(pkg.Dependencies),
		DevDependencies:      sortedNames(pkg.DevDependencies),
		PeerDependencies:     sortedNames(pkg.PeerDependencies),
		OptionalDependencies: sortedNames(pkg.OptionalDependencies),
	}, nil
}

func sortedNames(deps map[string]string) []string {
	if len(deps) == 0 {
		return nil
	}
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
