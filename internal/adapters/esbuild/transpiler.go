package esbuild

import (
	"context"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transpiler = (*Transpiler)(nil)

// Transpiler implements ports.Transpiler with the engine's transform API.
type Transpiler struct{}

// NewTranspiler creates a new Transpiler.
func NewTranspiler() *Transpiler {
	return &Transpiler{}
}

// TransformModule strips types and JSX and lowers syntax to the configured level.
// ES module syntax is kept so the engine can link the module.
func (t *Transpiler) TransformModule(_ context.Context, mod domain.Module, opts ports.TranspileOptions) (domain.Module, error) {
	if mod.Loader == domain.LoaderText {
		return mod, nil
	}

	transform := api.TransformOptions{
		Sourcefile:  mod.ID,
		Loader:      apiLoader(mod.Loader),
		Target:      languageLevel(opts.Target),
		TsconfigRaw: rawTypeConfig(opts.Types),
		Charset:     api.CharsetUTF8,
		LogLevel:    api.LogLevelSilent,
	}
	if opts.Sourcemap {
		transform.Sourcemap = api.SourceMapInline
	}

	result := api.Transform(mod.Code, transform)
	if len(result.Errors) > 0 {
		err := zerr.Wrap(messagesError(result.Errors), domain.ErrTranspileFailed.Error())
		return mod, zerr.With(err, "path", mod.ID)
	}

	return domain.Module{ID: mod.ID, Code: string(result.Code), Loader: domain.LoaderJS}, nil
}

// TransformChunk wraps CommonJS engine output into the AMD, UMD or SystemJS module system.
// Other module types are left untouched.
func (t *Transpiler) TransformChunk(_ context.Context, chunk *domain.Chunk, opts ports.TranspileOptions) error {
	header, footer, ok := wrapper(opts.ModuleType, chunk.Code, opts.GlobalName)
	if !ok {
		return nil
	}
	chunk.Prepend(header)
	chunk.Append(footer)
	return nil
}

// messagesError joins engine messages into one error.
func messagesError(msgs []api.Message) error {
	text := ""
	for i, msg := range msgs {
		if i > 0 {
			text += "\n"
		}
		text += messageText(msg)
	}
	return zerr.New(text)
}

func messageText(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}
