package tsc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// importSpecifier matches module specifiers in declaration files.
var importSpecifier = regexp.MustCompile(`(?:\bfrom\s*|\bimport\s*\(\s*|\bimport\s+)["']([^"']+)["']`)

const declarationExt = ".d.ts"

// emit copies the compiled declaration tree into the output directory, adds
// entry files and runs the chunk transforms over every file.
func emit(ctx context.Context, opts ports.BundleOptions, tmp string) ([]domain.OutputFile, error) {
	chunks, err := treeChunks(opts, tmp)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, entryChunks(opts, chunks)...)

	reportInlined(opts, chunks)

	if pipeline := opts.Pipeline; pipeline != nil {
		for _, chunk := range chunks {
			if err := pipeline.RenderChunk(ctx, chunk); err != nil {
				return nil, zerr.With(err, "chunk", chunk.FileName)
			}
		}
		if err := pipeline.GenerateBundle(ctx, chunks); err != nil {
			return nil, err
		}
	}

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
		files = append(files, domain.OutputFile{Path: chunk.Path, Size: len(chunk.Code)})
	}

	if pipeline := opts.Pipeline; pipeline != nil {
		if err := pipeline.WriteBundle(ctx, chunks); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// treeChunks reads every declaration file the compiler emitted.
func treeChunks(opts ports.BundleOptions, tmp string) ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk
	err := filepath.WalkDir(tmp, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, declarationExt) {
			return nil
		}
		rel, err := filepath.Rel(tmp, path)
		if err != nil {
			return err
		}
		// #nosec G304 -- path is inside the temporary output directory
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		chunks = append(chunks, &domain.Chunk{
			FileName: filepath.ToSlash(rel),
			Path:     filepath.Join(opts.OutDir, rel),
			Code:     string(code),
		})
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDeclarationFailed.Error())
	}
	return chunks, nil
}

// entryChunks writes one file per input that re-exports its emitted declarations.
// Entries whose declaration already sits at the entry path are marked in place.
func entryChunks(opts ports.BundleOptions, tree []*domain.Chunk) []*domain.Chunk {
	var entries []*domain.Chunk
	for _, entry := range opts.Entries {
		source := filepath.Join(opts.Cwd, entry.Path)
		rel, err := filepath.Rel(rootDir(opts), source)
		if err != nil {
			continue
		}
		emitted := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)) + declarationExt
		fileName := strings.ReplaceAll(entryTemplate(opts), "[name]", entry.Name)

		idx := slices.IndexFunc(tree, func(c *domain.Chunk) bool { return c.FileName == emitted })
		if idx < 0 {
			continue
		}
		if emitted == fileName {
			tree[idx].IsEntry = true
			tree[idx].FacadeModuleID = source
			continue
		}

		target := strings.TrimSuffix(importPath(fileName, emitted), declarationExt)
		code := "export * from \"" + target + "\";\n"
		if strings.Contains(tree[idx].Code, "export default") {
			code += "export { default } from \"" + target + "\";\n"
		}

		entries = append(entries, &domain.Chunk{
			FileName:       fileName,
			Path:           filepath.Join(opts.OutDir, filepath.FromSlash(fileName)),
			Code:           code,
			IsEntry:        true,
			FacadeModuleID: source,
		})
	}
	return entries
}

func entryTemplate(opts ports.BundleOptions) string {
	if opts.EntryNames == "" {
		return "[name]" + declarationExt
	}
	return opts.EntryNames
}

// importPath returns a relative import of target from the file from. Both are slash paths.
func importPath(from, target string) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(from)), filepath.FromSlash(target))
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

// reportInlined logs bare imports the declaration classifier would bundle.
// Declarations are never inlined, so these stay as imports.
func reportInlined(opts ports.BundleOptions, chunks []*domain.Chunk) {
	if opts.External == nil || opts.Logger == nil {
		return
	}
	seen := make(map[string]struct{})
	for _, chunk := range chunks {
		for _, match := range importSpecifier.FindAllStringSubmatch(chunk.Code, -1) {
			specifier := match[1]
			if strings.HasPrefix(specifier, ".") || filepath.IsAbs(specifier) {
				continue
			}
			if _, ok := seen[specifier]; ok {
				continue
			}
			seen[specifier] = struct{}{}
			if !opts.External(specifier, chunk.Path) {
				opts.Logger.Debug("declaration import " + specifier + " is kept, declarations are not inlined")
			}
		}
	}
}
