package esbuild

import (
	"regexp"

	"go.trai.ch/pack/internal/core/domain"
)

// shimNamespace is the engine namespace the virtual shim module lives in.
const shimNamespace = "pack-shim"

var shimFilter = "^" + regexp.QuoteMeta(domain.ShimSpecifier) + "$"

// shimSource provides CommonJS globals to ES module output.
const shimSource = `import url from "node:url";
import path from "node:path";
import module from "node:module";

const __filename = url.fileURLToPath(import.meta.url);
const __dirname = path.dirname(__filename);
const require = module.createRequire(import.meta.url);

export { __filename, __dirname, require };
`
