// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Base   = lipgloss.Color("#555657")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Format colors, keyed by output format name.
var formatColors = map[string]lipgloss.Color{
	"dts":  lipgloss.Color("#3a72ba"),
	"amd":  lipgloss.Color("#FFA07A"),
	"cjs":  lipgloss.Color("#ea8a39"),
	"esm":  lipgloss.Color("#fce43e"),
	"iife": lipgloss.Color("#FFDAB9"),
	"umd":  lipgloss.Color("#D8BFD8"),
	"sys":  lipgloss.Color("#87CEFA"),
}

// FormatColor returns the color used for a format prefix, Base for unknown formats.
func FormatColor(format string) lipgloss.Color {
	if c, ok := formatColors[format]; ok {
		return c
	}
	return Base
}

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Arrow   = "→"
)
