package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/reqlog/internal/ui/theme"
)

const (
	helpBoxWidth     = 56
	helpContentWidth = helpBoxWidth - 6 // padding + border
)

// HelpSection is a titled group of bindings in the help overlay.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	sections []HelpSection
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
	ready    bool
}

// NewHelp creates a new help overlay for the given sections.
func NewHelp(t theme.Theme, sections []HelpSection) Help {
	return Help{
		theme:    t,
		sections: sections,
	}
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
	if m.Visible {
		m.buildViewport()
	}
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(14).
		Align(lipgloss.Right)

	descStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text)

	sectionStyle := lipgloss.NewStyle().
		Foreground(m.theme.Lavender).
		Bold(true).
		MarginTop(1)

	sepStyle := lipgloss.NewStyle().
		Foreground(m.theme.Muted)

	var lines []string
	for _, section := range m.sections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", helpContentWidth)))

		for _, b := range section.Bindings {
			h := b.Help()
			line := keyStyle.Render(h.Key) + sepStyle.Render(" │ ") + descStyle.Render(h.Desc)
			lines = append(lines, line)
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 5 {
		vpHeight = 5
	}

	m.viewport = viewport.New(helpContentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ready = true
}

// Init implements tea.Model.
func (m Help) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}

	if !m.ready {
		m.buildViewport()
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(helpContentWidth).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(helpBoxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.viewport.View())
}
