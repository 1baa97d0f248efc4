package domain

// PackageMetadata is the subset of package.json the build reads.
type PackageMetadata struct {
	Path                 string
	Name                 string
	Version              string
	Type                 string
	Main                 string
	Types                string
	Dependencies         []string
	DevDependencies      []string
	PeerDependencies     []string
	OptionalDependencies []string
}

// IsModule reports whether the package declares "type": "module".
func (p PackageMetadata) IsModule() bool {
	return p.Type == "module"
}

// TypeMetadata is the subset of tsconfig.json compiler options relevant to codegen.
type TypeMetadata struct {
	// Path is the tsconfig.json that was read, empty when none exists.
	Path                    string
	Dir                     string
	Target                  string
	JSX                     string
	JSXFactory              string
	JSXFragmentFactory      string
	JSXImportSource         string
	ExperimentalDecorators  bool
	EmitDecoratorMetadata   bool
	UseDefineForClassFields *bool
	PreserveConstEnums      bool
	ESModuleInterop         bool
	BaseURL                 string
	Paths                   map[string][]string
	OutDir                  string
	RootDir                 string
	Include                 []string
	Exclude                 []string
}

// LanguageLevel returns the configured language level, defaulting to es2020.
func (t TypeMetadata) LanguageLevel() string {
	if t.Target == "" {
		return "es2020"
	}
	return t.Target
}
