package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/reqlog/internal/ui/theme"
)

const defaultToastDuration = 3 * time.Second

// toastDismissMsg dismisses the toast it was scheduled for.
type toastDismissMsg struct {
	seq int
}

// Toast is an auto-dismiss notification.
type Toast struct {
	Visible bool
	text    string
	isError bool
	seq     int
	theme   theme.Theme
}

// NewToast creates a new toast component.
func NewToast(t theme.Theme) Toast {
	return Toast{theme: t}
}

// Show displays a toast message and returns a Cmd for auto-dismiss.
func (m *Toast) Show(text string, isError bool, duration time.Duration) tea.Cmd {
	m.Visible = true
	m.text = text
	m.isError = isError
	m.seq++
	if duration <= 0 {
		duration = defaultToastDuration
	}
	seq := m.seq
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Text returns the toast text.
func (m Toast) Text() string {
	return m.text
}

// IsError reports whether the toast shows an error.
func (m Toast) IsError() bool {
	return m.isError
}

// Init implements tea.Model.
func (m Toast) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case toastDismissMsg:
		if msg.seq == m.seq {
			m.Visible = false
			m.text = ""
		}
	}
	return m, nil
}

// View renders the toast notification.
func (m Toast) View() string {
	if !m.Visible || m.text == "" {
		return ""
	}

	fg := m.theme.Green
	if m.isError {
		fg = m.theme.Red
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(m.theme.Surface).
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Render(m.text)
}
