package pipeline

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

var shimUsage = regexp.MustCompile(`\b(__dirname|__filename|require)\b`)

const shimImport = `import {__dirname, __filename, require} from "` + domain.ShimSpecifier + `"; `

// Shims gives ES module output the CommonJS globals it mentions.
func Shims(logger ports.Logger) Transform {
	return Transform{
		Name: "shims",
		Module: Hook[ModuleFunc]{Order: OrderPre, Fn: func(_ context.Context, mod domain.Module) (domain.Module, error) {
			if mod.Loader == domain.LoaderText || inNodeModules(mod.ID) {
				return mod, nil
			}
			if strings.Contains(mod.Code, domain.ShimSpecifier) || !shimUsage.MatchString(mod.Code) {
				return mod, nil
			}
			mod.Code = InjectFirstLine(mod.Code, shimImport)
			logger.Debug("shims injected for " + mod.ID)
			return mod, nil
		}},
	}
}

// InjectFirstLine inserts text at the start of the first line after any shebang.
func InjectFirstLine(code, text string) string {
	if strings.HasPrefix(code, "#!") {
		end := strings.IndexByte(code, '\n')
		if end < 0 {
			return code + "\n" + text
		}
		return code[:end+1] + text + code[end+1:]
	}
	return text + code
}

func inNodeModules(id string) bool {
	return strings.Contains(filepath.ToSlash(id), "/"+domain.NodeModulesDir+"/")
}
