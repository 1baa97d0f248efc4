// Package detector provides environment detection for terminal color selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how log output is rendered.
type OutputMode int

const (
	// ModeInteractive renders with the terminal's full color profile.
	ModeInteractive OutputMode = iota
	// ModeCI renders with basic ANSI colors.
	ModeCI
	// ModePlain renders without escape codes.
	ModePlain
)

// DetectEnvironment returns the recommended output mode for the given file descriptor.
// It checks whether fd is a TTY and whether CI environment variables are set.
func DetectEnvironment(fd uintptr) OutputMode {
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" {
		return ModeCI
	}
	if !term.IsTerminal(int(fd)) { //nolint:gosec // file descriptors fit in int
		return ModePlain
	}
	return ModeInteractive
}
