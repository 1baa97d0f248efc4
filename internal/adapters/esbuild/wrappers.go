package esbuild

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/pack/internal/core/domain"
)

// requireCall matches literal require calls left in CommonJS output for external imports.
var requireCall = regexp.MustCompile(`\brequire\(\s*"([^"]+)"\s*\)`)

// requiredModules returns the distinct modules a CommonJS chunk requires, in first-use order.
func requiredModules(code string) []string {
	var deps []string
	for _, match := range requireCall.FindAllStringSubmatch(code, -1) {
		if !slices.Contains(deps, match[1]) {
			deps = append(deps, match[1])
		}
	}
	return deps
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}

// wrapper returns the text placed around a CommonJS chunk to turn it into moduleType.
func wrapper(moduleType domain.ModuleType, code, globalName string) (header, footer string, ok bool) {
	deps := requiredModules(code)

	switch moduleType {
	case domain.ModuleAMD:
		header = "define(" + amdDeps(deps) + ", function (require, exports, module) {\n"
		footer = "\n});\n"
	case domain.ModuleUMD:
		global := "root"
		if globalName != "" {
			global = "root[" + strconv.Quote(globalName) + "]"
		}
		header = "(function (root, factory) {\n" +
			"  if (typeof define === \"function\" && define.amd) define(" + amdDeps(deps) + ", factory);\n" +
			"  else if (typeof module === \"object\" && module.exports) factory(require, exports, module);\n" +
			"  else { var m = { exports: {} }; factory(function (id) { return root[id]; }, m.exports, m); " + global + " = m.exports; }\n" +
			"})(typeof globalThis !== \"undefined\" ? globalThis : typeof self !== \"undefined\" ? self : this, function (require, exports, module) {\n"
		footer = "\n});\n"
	case domain.ModuleSystemJS:
		setters := make([]string, len(deps))
		for i, dep := range deps {
			setters[i] = "function (m) { deps[" + strconv.Quote(dep) + "] = m; }"
		}
		header = "System.register([" + quoteList(deps) + "], function (_export, _context) {\n" +
			"  var deps = {};\n" +
			"  return { setters: [" + strings.Join(setters, ", ") + "], execute: function () {\n" +
			"  var require = function (id) { return deps[id]; };\n" +
			"  var module = { exports: {} }, exports = module.exports;\n"
		footer = "\n  _export(module.exports);\n  _export(\"default\", module.exports.default !== undefined ? module.exports.default : module.exports);\n  } };\n});\n"
	default:
		return "", "", false
	}
	return header, footer, true
}

func amdDeps(deps []string) string {
	base := []string{"require", "exports", "module"}
	return "[" + quoteList(append(base, deps...)) + "]"
}
