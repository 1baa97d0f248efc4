package metadata

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxExtendsDepth bounds extends chains so that cycles terminate.
const maxExtendsDepth = 16

type compilerOptions struct {
	Target                  *string             `json:"target"`
	JSX                     *string             `json:"jsx"`
	JSXFactory              *string             `json:"jsxFactory"`
	JSXFragmentFactory      *string             `json:"jsxFragmentFactory"`
	JSXImportSource         *string             `json:"jsxImportSource"`
	ExperimentalDecorators  *bool               `json:"experimentalDecorators"`
	EmitDecoratorMetadata   *bool               `json:"emitDecoratorMetadata"`
	UseDefineForClassFields *bool               `json:"useDefineForClassFields"`
	PreserveConstEnums      *bool               `json:"preserveConstEnums"`
	ESModuleInterop         *bool               `json:"esModuleInterop"`
	BaseURL                 *string             `json:"baseUrl"`
	Paths                   map[string][]string `json:"paths"`
	OutDir                  *string             `json:"outDir"`
	RootDir                 *string             `json:"rootDir"`
}

type tsconfigFile struct {
	Extends         string          `json:"extends"`
	CompilerOptions compilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include"`
	Exclude         []string        `json:"exclude"`
}

// LoadTypes reads tsconfig.json in cwd, following relative extends chains.
// A missing file yields zero metadata.
func (l *Loader) LoadTypes(cwd string) (domain.TypeMetadata, error) {
	path := domain.TypeConfigPath(cwd)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return domain.TypeMetadata{Dir: cwd}, nil
	}

	meta := domain.TypeMetadata{Path: path, Dir: cwd}
	if err := applyConfig(&meta, path, 0); err != nil {
		return domain.TypeMetadata{}, err
	}
	return meta, nil
}

// applyConfig applies the config at path over meta, base configs first.
// Directory-valued options are made absolute relative to the file that sets them.
func applyConfig(meta *domain.TypeMetadata, path string, depth int) error {
	if depth > maxExtendsDepth {
		return zerr.With(domain.ErrTypeConfigParseFailed, "extends_depth", depth)
	}

	// #nosec G304 -- path is tsconfig.json or a relative extends target
	data, err := os.ReadFile(path)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrTypeConfigParseFailed.Error())
		return zerr.With(err, "path", path)
	}

	data, err = NormalizeJSONC(data)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrTypeConfigParseFailed.Error())
		return zerr.With(err, "path", path)
	}

	var file tsconfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		err = zerr.Wrap(err, domain.ErrTypeConfigParseFailed.Error())
		return zerr.With(err, "path", path)
	}

	dir := filepath.Dir(path)
	if ext := file.Extends; ext != "" && (strings.HasPrefix(ext, "./") || strings.HasPrefix(ext, "../")) {
		base := filepath.Join(dir, ext)
		if filepath.Ext(base) != ".json" {
			base += ".json"
		}
		if err := applyConfig(meta, base, depth+1); err != nil {
			return err
		}
	}

	opts := file.CompilerOptions
	setString(&meta.JSX, opts.JSX)
	setString(&meta.JSXFactory, opts.JSXFactory)
	setString(&meta.JSXFragmentFactory, opts.JSXFragmentFactory)
	setString(&meta.JSXImportSource, opts.JSXImportSource)
	setBool(&meta.ExperimentalDecorators, opts.ExperimentalDecorators)
	setBool(&meta.EmitDecoratorMetadata, opts.EmitDecoratorMetadata)
	setBool(&meta.PreserveConstEnums, opts.PreserveConstEnums)
	setBool(&meta.ESModuleInterop, opts.ESModuleInterop)
	if opts.UseDefineForClassFields != nil {
		meta.UseDefineForClassFields = opts.UseDefineForClassFields
	}
	if opts.BaseURL != nil {
		meta.BaseURL = filepath.Join(dir, *opts.BaseURL)
	}
	if opts.Paths != nil {
		meta.Paths = opts.Paths
		if meta.BaseURL == "" {
			// paths without baseUrl resolve relative to the declaring file.
			meta.BaseURL = dir
		}
	}
	if opts.OutDir != nil {
		meta.OutDir = filepath.Join(dir, *opts.OutDir)
	}
	if opts.RootDir != nil {
		meta.RootDir = filepath.Join(dir, *opts.RootDir)
	}
	if file.Include != nil {
		meta.Include = file.Include
	}
	if file.Exclude != nil {
		meta.Exclude = file.Exclude
	}
	if opts.Target != nil {
		meta.Target = strings.ToLower(*opts.Target)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
