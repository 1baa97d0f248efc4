package domain

import "strings"

// NodeProtocol is the import prefix of builtin modules.
const NodeProtocol = "node:"

// nodeBuiltins are the public entries of require("module").builtinModules in
// Node.js 22, without subpaths.
var nodeBuiltins = map[string]struct{}{
	"assert": {}, "async_hooks": {}, "buffer": {}, "child_process": {}, "cluster": {},
	"console": {}, "constants": {}, "crypto": {}, "dgram": {}, "diagnostics_channel": {},
	"dns": {}, "domain": {}, "events": {}, "fs": {}, "http": {}, "http2": {}, "https": {},
	"inspector": {}, "module": {}, "net": {}, "os": {}, "path": {}, "perf_hooks": {},
	"process": {}, "punycode": {}, "querystring": {}, "readline": {}, "repl": {},
	"stream": {}, "string_decoder": {}, "sys": {}, "timers": {}, "tls": {},
	"trace_events": {}, "tty": {}, "url": {}, "util": {}, "v8": {}, "vm": {},
	"wasi": {}, "worker_threads": {}, "zlib": {},
}

// nodeSchemeBuiltins load only through the node: protocol.
var nodeSchemeBuiltins = map[string]struct{}{
	"sea": {}, "sqlite": {}, "test": {},
}

// IsBuiltin reports whether specifier names a Node.js builtin module, including
// subpaths such as fs/promises and the node: protocol. Modules such as node:test
// are builtin only with the protocol.
func IsBuiltin(specifier string) bool {
	rest, scheme := strings.CutPrefix(specifier, NodeProtocol)
	name, _, _ := strings.Cut(rest, "/")
	if _, ok := nodeBuiltins[name]; ok {
		return true
	}
	_, ok := nodeSchemeBuiltins[name]
	return ok && scheme
}

// PackageName returns the top-level package name of a bare specifier,
// keeping two segments for scoped packages.
func PackageName(specifier string) string {
	parts := strings.SplitN(specifier, "/", 3)
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
