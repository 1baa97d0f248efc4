package domain

import "strings"

// Format is an output format name.
type Format string

const (
	FormatESM  Format = "esm"
	FormatCJS  Format = "cjs"
	FormatAMD  Format = "amd"
	FormatIIFE Format = "iife"
	FormatUMD  Format = "umd"
	FormatSys  Format = "sys"
	FormatDTS  Format = "dts"
)

// ModuleType is the module system a chunk is emitted in.
type ModuleType string

const (
	ModuleES6      ModuleType = "es6"
	ModuleCommonJS ModuleType = "commonjs"
	ModuleAMD      ModuleType = "amd"
	ModuleIIFE     ModuleType = "iife"
	ModuleUMD      ModuleType = "umd"
	ModuleSystemJS ModuleType = "systemjs"
)

// EngineFormat is the output format requested from the bundling engine.
type EngineFormat string

const (
	EngineESM  EngineFormat = "esm"
	EngineCJS  EngineFormat = "cjs"
	EngineIIFE EngineFormat = "iife"
	// EngineDeclarations marks formats produced by the declaration compiler.
	EngineDeclarations EngineFormat = "declarations"
)

// FormatSpec holds everything that differs between output formats.
type FormatSpec struct {
	Format      Format
	ModuleType  ModuleType
	Engine      EngineFormat
	Extension   string
	Transpile   bool
	Declaration bool
}

// Wrapped reports whether the engine output of the format is re-wrapped into another module system.
func (s FormatSpec) Wrapped() bool {
	switch s.ModuleType {
	case ModuleAMD, ModuleUMD, ModuleSystemJS:
		return true
	default:
		return false
	}
}

var formatTable = map[Format]FormatSpec{
	FormatESM:  {Format: FormatESM, ModuleType: ModuleES6, Engine: EngineESM, Extension: "mjs", Transpile: true},
	FormatCJS:  {Format: FormatCJS, ModuleType: ModuleCommonJS, Engine: EngineCJS, Extension: "cjs", Transpile: true},
	FormatAMD:  {Format: FormatAMD, ModuleType: ModuleAMD, Engine: EngineCJS, Extension: "amd.js", Transpile: true},
	FormatIIFE: {Format: FormatIIFE, ModuleType: ModuleIIFE, Engine: EngineIIFE, Extension: "iife.js", Transpile: true},
	FormatUMD:  {Format: FormatUMD, ModuleType: ModuleUMD, Engine: EngineCJS, Extension: "umd.js", Transpile: true},
	FormatSys:  {Format: FormatSys, ModuleType: ModuleSystemJS, Engine: EngineCJS, Extension: "sys.js", Transpile: true},
	FormatDTS:  {Format: FormatDTS, Engine: EngineDeclarations, Extension: "d.ts", Declaration: true},
}

// AllFormats lists every supported format in table order.
var AllFormats = []Format{FormatESM, FormatCJS, FormatAMD, FormatIIFE, FormatUMD, FormatSys, FormatDTS}

// LookupFormat returns the table entry for f.
func LookupFormat(f Format) (FormatSpec, bool) {
	spec, ok := formatTable[f]
	return spec, ok
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// Extension returns the file extension of f. The primary format uses "js".
func (f Format) Extension(primary bool) string {
	spec, ok := formatTable[f]
	if !ok {
		return "js"
	}
	if primary && !spec.Declaration {
		return "js"
	}
	return spec.Extension
}

// ExpandName replaces the [format] and [ext] placeholders of an output name template.
func ExpandName(template string, f Format, primary bool) string {
	r := strings.NewReplacer("[format]", string(f), "[ext]", f.Extension(primary))
	return r.Replace(template)
}
