package domain

import (
	"encoding/json"
	"strings"
)

// Loader names the syntax of a module's source.
type Loader string

const (
	LoaderJS   Loader = "js"
	LoaderJSX  Loader = "jsx"
	LoaderTS   Loader = "ts"
	LoaderTSX  Loader = "tsx"
	LoaderText Loader = "text"
)

// Module is one source file passing through the module-level transforms.
type Module struct {
	ID     string
	Code   string
	Loader Loader
}

// Chunk is one emitted code file passing through the chunk-level transforms.
type Chunk struct {
	// FileName is relative to the output directory.
	FileName string
	// Path is absolute.
	Path string
	Code string
	// Map is the JSON source map, empty when sourcemaps are off.
	Map     string
	IsEntry bool
	// FacadeModuleID is the absolute source path of the entry module behind an entry chunk.
	FacadeModuleID string
}

const sourceMappingPrefix = "//# sourceMappingURL="

// Prepend inserts text before the chunk code and shifts the source map by the
// number of lines added. Text must end with a newline to keep lines aligned.
func (c *Chunk) Prepend(text string) {
	c.Code = text + c.Code
	c.shiftMap(strings.Count(text, "\n"))
}

// Append adds text at the end of the chunk, before a trailing sourceMappingURL comment.
func (c *Chunk) Append(text string) {
	idx := strings.LastIndex(c.Code, sourceMappingPrefix)
	if idx < 0 || strings.ContainsRune(strings.TrimRight(c.Code[idx:], "\n"), '\n') {
		c.Code += text
		return
	}
	c.Code = strings.TrimSuffix(c.Code[:idx], "\n") + text + "\n" + c.Code[idx:]
}

func (c *Chunk) shiftMap(lines int) {
	if lines <= 0 || c.Map == "" {
		return
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(c.Map), &raw); err != nil {
		return
	}
	var mappings string
	if err := json.Unmarshal(raw["mappings"], &mappings); err != nil {
		return
	}
	shifted, err := json.Marshal(strings.Repeat(";", lines) + mappings)
	if err != nil {
		return
	}
	raw["mappings"] = shifted
	out, err := json.Marshal(raw)
	if err != nil {
		return
	}
	c.Map = string(out)
}
