package domain

import "path/filepath"

const (
	// ToolName is the tool's own package name. Imports of it are always bundled.
	ToolName = "pack"

	// ShimSpecifier is the virtual module providing __dirname, __filename and require to ESM output.
	ShimSpecifier = "pack/shims/esm"

	// PackageFileName is the name of the package metadata file.
	PackageFileName = "package.json"

	// TypeConfigFileName is the name of the type-checker config file.
	TypeConfigFileName = "tsconfig.json"

	// TypeStubFileName is the name of the generated environment type stub.
	TypeStubFileName = "types.d.ts"

	// DefaultOutDir is the output directory used when nothing else applies.
	DefaultOutDir = "dist"

	// DefaultInput is the entry used when no conventional entry file exists.
	DefaultInput = "source/main.ts"

	// DefaultCopyFrom is the source directory of a copy spec without an explicit from.
	DefaultCopyFrom = "public"

	// NodeModulesDir is the name of the package installation directory.
	NodeModulesDir = "node_modules"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission of entry files carrying a shebang (rwxr-xr-x).
	ExecPerm = 0o755
)

// ConfigFileNames lists the project config file names in lookup order.
var ConfigFileNames = []string{"pack.yaml", "pack.yml", "pack.json"}

// PackagePath returns the path of package.json in the given project root.
func PackagePath(cwd string) string {
	return filepath.Join(cwd, PackageFileName)
}

// TypeConfigPath returns the path of tsconfig.json in the given project root.
func TypeConfigPath(cwd string) string {
	return filepath.Join(cwd, TypeConfigFileName)
}

// TypeStubPath returns the path of the generated environment type stub.
func TypeStubPath(cwd string) string {
	return filepath.Join(cwd, TypeStubFileName)
}
