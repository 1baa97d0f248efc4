package ports

import "go.trai.ch/pack/internal/core/domain"

// ConfigLoader defines the interface for discovering and loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Find returns the config file in cwd, or an empty string if there is none.
	Find(cwd string) (string, error)
	// Load reads the config file at path.
	Load(path string) (ConfigProvider, error)
}

// ConfigProvider yields the user configuration layer.
// Static files ignore base; conditional files pick their blocks from it.
type ConfigProvider interface {
	Provide(base domain.Config) (domain.Config, error)
}

// MetadataLoader reads package and compiler metadata.
type MetadataLoader interface {
	// LoadPackage reads package.json in cwd.
	LoadPackage(cwd string) (domain.PackageMetadata, error)
	// LoadTypes reads tsconfig.json in cwd. A missing file yields zero metadata.
	LoadTypes(cwd string) (domain.TypeMetadata, error)
}

// EnvLoader reads dotenv files.
type EnvLoader interface {
	// Load reads the existing files among paths in order, later files overriding earlier ones.
	// It returns the merged values and the paths that were read.
	Load(paths []string) (map[string]string, []string, error)
}
