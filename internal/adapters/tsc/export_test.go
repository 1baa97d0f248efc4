package tsc

// Internal hooks for external tests.
var (
	Classify     = classify
	ImportPath   = importPath
	CompilerArgs = compilerArgs
)

const (
	LineOutput   = lineOutput
	LineStarted  = lineStarted
	LineFinished = lineFinished
)

// NewCompilerWithLookPath creates a Compiler that finds PATH binaries with fn.
func NewCompilerWithLookPath(fn func(string) (string, error)) *Compiler {
	return &Compiler{lookPath: fn}
}
