package esbuild

// Internal hooks for external tests.
var (
	OutputNames     = outputNames
	LanguageLevel   = languageLevel
	RequiredModules = requiredModules
	LoaderFor       = loaderFor
)

// ParseMetafile reports the entry point behind outPath in raw.
func ParseMetafile(raw, cwd, outPath string) (string, error) {
	meta, err := parseMetafile(raw)
	if err != nil {
		return "", err
	}
	return meta.entryPoint(cwd, outPath), nil
}
