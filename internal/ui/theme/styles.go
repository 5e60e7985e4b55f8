package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	Title    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	URL      lipgloss.Style
	Service  lipgloss.Style
	Hint     lipgloss.Style
	Selected lipgloss.Style

	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style

	theme Theme
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Error:   lipgloss.NewStyle().Foreground(t.Red),
		Success: lipgloss.NewStyle().Foreground(t.Green),
		URL:     lipgloss.NewStyle().Foreground(t.Yellow),
		Service: lipgloss.NewStyle().Foreground(t.Green),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Selected: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		StatusMode: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Accent).
			Bold(true),

		theme: t,
	}
}

// MethodStyle returns a bold style in the method's color.
func (s Styles) MethodStyle(method string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.theme.MethodColor(method)).Bold(true)
}
