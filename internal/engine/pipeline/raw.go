package pipeline

import (
	"context"
	"encoding/json"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// Raw turns text assets into modules exporting their content.
func Raw() Transform {
	return Transform{
		Name: "raw",
		Module: Hook[ModuleFunc]{Order: OrderPre, Fn: func(_ context.Context, mod domain.Module) (domain.Module, error) {
			if mod.Loader != domain.LoaderText {
				return mod, nil
			}
			content, err := json.Marshal(mod.Code)
			if err != nil {
				return mod, zerr.Wrap(err, domain.ErrTransformFailed.Error())
			}
			mod.Code = "export const content = " + string(content) + ";\nexport default content;\n"
			mod.Loader = domain.LoaderJS
			return mod, nil
		}},
	}
}
