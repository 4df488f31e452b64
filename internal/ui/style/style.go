// Package style provides shared colors and icons for the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Paint renders s in color c on out. The output's profile decides whether any
// escape codes are emitted.
func Paint(out *termenv.Output, c lipgloss.Color, s string) string {
	return out.String(s).Foreground(out.Color(string(c))).String()
}
