package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors used by the browser and the list printer.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Accent   lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// MethodColor returns the color for an HTTP method.
func (t Theme) MethodColor(method string) lipgloss.Color {
	switch method {
	case "GET":
		return t.Green
	case "POST":
		return t.Yellow
	case "PUT":
		return t.Blue
	case "PATCH":
		return t.Peach
	case "DELETE":
		return t.Red
	case "HEAD":
		return t.Teal
	case "OPTIONS":
		return t.Lavender
	default:
		return t.Text
	}
}
