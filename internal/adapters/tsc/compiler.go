// Package tsc emits declaration bundles with the TypeScript compiler.
package tsc

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Compiler)(nil)

// Compiler implements ports.Bundler for the declaration format.
type Compiler struct {
	lookPath func(file string) (string, error)
}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{lookPath: exec.LookPath}
}

// Locate returns the project-local compiler, else the one on PATH.
func (c *Compiler) Locate(cwd string) (string, error) {
	local := filepath.Join(cwd, domain.NodeModulesDir, ".bin", "tsc")
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local, nil
	}
	path, err := c.lookPath("tsc")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCompilerNotFound.Error()), "cwd", cwd)
	}
	return path, nil
}

// Build emits declarations once into a temporary directory, then writes the
// declaration tree and one re-exporting entry file per input.
func (c *Compiler) Build(ctx context.Context, opts ports.BundleOptions) (domain.BuildResult, error) {
	start := time.Now()

	bin, err := c.Locate(opts.Cwd)
	if err != nil {
		return domain.BuildResult{}, err
	}

	tmp, err := os.MkdirTemp("", "pack-dts-*")
	if err != nil {
		return domain.BuildResult{}, zerr.Wrap(err, domain.ErrDeclarationFailed.Error())
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	// #nosec G204 -- the compiler path is resolved from node_modules or PATH
	cmd := exec.CommandContext(ctx, bin, compilerArgs(opts, tmp)...)
	cmd.Dir = opts.Cwd
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		err = zerr.Wrap(err, domain.ErrDeclarationFailed.Error())
		return domain.BuildResult{}, zerr.With(err, "output", strings.TrimSpace(out.String()))
	}

	files, err := emit(ctx, opts, tmp)
	if err != nil {
		return domain.BuildResult{}, err
	}
	return domain.BuildResult{Files: files, Duration: time.Since(start)}, nil
}

// Watch runs the compiler in watch mode and re-emits after every successful compilation.
func (c *Compiler) Watch(ctx context.Context, opts ports.BundleOptions) (ports.WatchHandle, error) {
	bin, err := c.Locate(opts.Cwd)
	if err != nil {
		return nil, err
	}
	return startWatch(ctx, bin, opts)
}

func compilerArgs(opts ports.BundleOptions, outDir string) []string {
	args := []string{"--declaration", "--emitDeclarationOnly", "--outDir", outDir}
	args = append(args, "--rootDir", rootDir(opts))
	if opts.Types.Path != "" {
		return append(args, "--project", opts.Types.Path)
	}
	for _, entry := range opts.Entries {
		args = append(args, entry.Path)
	}
	return args
}

// rootDir is the directory the emitted tree mirrors.
func rootDir(opts ports.BundleOptions) string {
	if opts.Types.RootDir != "" {
		return opts.Types.RootDir
	}
	return opts.Cwd
}
