package esbuild

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler on top of an incremental engine context.
type Bundler struct{}

// NewBundler creates a new Bundler.
func NewBundler() *Bundler {
	return &Bundler{}
}

// session is one engine context together with the bridge its plugin reports to.
// It is the domain.BuildCache handed back to callers.
type session struct {
	opts    ports.BundleOptions
	bridge  *bridge
	engine  api.BuildContext
	release sync.Once
	// inputs are the source files of the last successful build.
	inputs []string
}

var _ domain.BuildCache = (*session)(nil)

// Release disposes the engine context. It is safe to call more than once.
func (s *session) Release() {
	s.release.Do(s.engine.Dispose)
}

// Build runs one build in a fresh engine context and writes its output. The
// returned cache holds that context until released.
func (b *Bundler) Build(ctx context.Context, opts ports.BundleOptions) (domain.BuildResult, error) {
	sess, err := b.open(opts)
	if err != nil {
		return domain.BuildResult{}, err
	}

	result, err := sess.build(ctx)
	if err != nil {
		sess.Release()
		return domain.BuildResult{}, err
	}
	return result, nil
}

// Watch starts a watch session that rebuilds when a source file of the last build changes.
func (b *Bundler) Watch(ctx context.Context, opts ports.BundleOptions) (ports.WatchHandle, error) {
	sess, err := b.open(opts)
	if err != nil {
		return nil, err
	}
	return startWatch(ctx, sess)
}

func (b *Bundler) open(opts ports.BundleOptions) (*session, error) {
	br := newBridge(opts)
	engine, ctxErr := api.Context(buildOptions(opts, br.plugin()))
	if ctxErr != nil {
		err := zerr.Wrap(messagesError(ctxErr.Errors), domain.ErrBuildFailed.Error())
		return nil, zerr.With(err, "format", string(opts.Format.Format))
	}
	return &session{opts: opts, bridge: br, engine: engine}, nil
}

// build rebuilds, runs the chunk transforms and writes every chunk.
func (s *session) build(ctx context.Context) (domain.BuildResult, error) {
	start := time.Now()
	s.bridge.begin(ctx)

	result := s.engine.Rebuild()
	for _, warning := range result.Warnings {
		if s.opts.Logger != nil {
			s.opts.Logger.Warn(messageText(warning))
		}
	}
	if len(result.Errors) > 0 {
		err := zerr.Wrap(messagesError(result.Errors), domain.ErrBuildFailed.Error())
		return domain.BuildResult{}, zerr.With(err, "format", string(s.opts.Format.Format))
	}

	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		return domain.BuildResult{}, zerr.With(err, "format", string(s.opts.Format.Format))
	}
	chunks := s.chunks(result.OutputFiles, meta)

	pipeline := s.opts.Pipeline
	if pipeline != nil {
		for _, chunk := range chunks {
			if err := pipeline.RenderChunk(ctx, chunk); err != nil {
				return domain.BuildResult{}, zerr.With(err, "chunk", chunk.FileName)
			}
		}
		if err := pipeline.GenerateBundle(ctx, chunks); err != nil {
			return domain.BuildResult{}, err
		}
	}

	files, err := writeChunks(chunks)
	if err != nil {
		return domain.BuildResult{}, err
	}

	if pipeline != nil {
		if err := pipeline.WriteBundle(ctx, chunks); err != nil {
			return domain.BuildResult{}, err
		}
	}

	s.inputs = meta.sources(s.opts.Cwd)
	return domain.BuildResult{Files: files, Duration: time.Since(start), Cache: s}, nil
}

// chunks pairs code outputs with their source maps and marks entry chunks.
func (s *session) chunks(outputs []api.OutputFile, meta metafile) []*domain.Chunk {
	maps := make(map[string]string)
	for _, out := range outputs {
		if strings.HasSuffix(out.Path, ".map") {
			maps[strings.TrimSuffix(out.Path, ".map")] = string(out.Contents)
		}
	}

	chunks := make([]*domain.Chunk, 0, len(outputs))
	for _, out := range outputs {
		if strings.HasSuffix(out.Path, ".map") {
			continue
		}
		fileName, err := filepath.Rel(s.opts.OutDir, out.Path)
		if err != nil {
			fileName = filepath.Base(out.Path)
		}
		chunk := &domain.Chunk{
			FileName: filepath.ToSlash(fileName),
			Path:     out.Path,
			Code:     string(out.Contents),
			Map:      maps[out.Path],
		}
		if entry := meta.entryPoint(s.opts.Cwd, out.Path); entry != "" {
			chunk.IsEntry = true
			chunk.FacadeModuleID = entry
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func writeChunks(chunks []*domain.Chunk) ([]domain.OutputFile, error) {
	files := make([]domain.OutputFile, 0, len(chunks))
	for _, chunk := range chunks {
		if err := os.MkdirAll(filepath.Dir(chunk.Path), domain.DirPerm); err != nil {
			err = zerr.Wrap(err, domain.ErrWriteOutputFailed.Error())
			return nil, zerr.With(err, "path", chunk.Path)
		}
		if err := os.WriteFile(chunk.Path, []byte(chunk.Code), domain.FilePerm); err != nil {
			err = zerr.Wrap(err, domain.ErrWriteOutputFailed.Error())
			return nil, zerr.With(err, "path", chunk.Path)
		}
		if chunk.Map != "" {
			if err := os.WriteFile(chunk.Path+".map", []byte(chunk.Map), domain.FilePerm); err != nil {
				err = zerr.Wrap(err, domain.ErrWriteOutputFailed.Error())
				return nil, zerr.With(err, "path", chunk.Path+".map")
			}
		}
		files = append(files, domain.OutputFile{Path: chunk.Path, Size: len(chunk.Code)})
	}
	return files, nil
}

// metafile is the part of the engine's metafile the bundler reads.
type metafile struct {
	Inputs  map[string]json.RawMessage `json:"inputs"`
	Outputs map[string]struct {
		EntryPoint string `json:"entryPoint,omitempty"`
	} `json:"outputs"`
}

func parseMetafile(raw string) (metafile, error) {
	var meta metafile
	if raw == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return metafile{}, zerr.Wrap(err, domain.ErrBuildFailed.Error())
	}
	return meta, nil
}

// entryPoint returns the absolute entry source behind an output, if any.
func (m metafile) entryPoint(cwd, outPath string) string {
	rel, err := filepath.Rel(cwd, outPath)
	if err != nil {
		return ""
	}
	out, ok := m.Outputs[filepath.ToSlash(rel)]
	if !ok || out.EntryPoint == "" || isVirtual(out.EntryPoint) {
		return ""
	}
	return filepath.Join(cwd, filepath.FromSlash(out.EntryPoint))
}

// sources returns the absolute paths of the real input files outside node_modules.
func (m metafile) sources(cwd string) []string {
	paths := make([]string, 0, len(m.Inputs))
	for input := range m.Inputs {
		if isVirtual(input) || strings.Contains(input, domain.NodeModulesDir+"/") {
			continue
		}
		paths = append(paths, filepath.Join(cwd, filepath.FromSlash(input)))
	}
	return paths
}

// isVirtual reports whether a metafile path lives in a plugin namespace.
func isVirtual(path string) bool {
	namespace, _, found := strings.Cut(path, ":")
	return found && !strings.ContainsAny(namespace, `/\`) && len(namespace) > 1
}
