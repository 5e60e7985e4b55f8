package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/reqlog/internal/ui/theme"
)

// clearStatusMsg clears a temporary status message.
type clearStatusMsg struct {
	seq int
}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	position  int
	total     int
	size      int
	createdAt time.Time
	view      string
	message   string
	seq       int
	width     int
	now       func() time.Time
	theme     theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) StatusBar {
	return StatusBar{
		theme: t,
		view:  "LIST",
		now:   time.Now,
	}
}

// SetRecord sets the selected record info. position is 1-based; zero
// means nothing is selected.
func (m *StatusBar) SetRecord(position, total, size int, createdAt time.Time) {
	m.position = position
	m.total = total
	m.size = size
	m.createdAt = createdAt
}

// SetView sets the view indicator.
func (m *StatusBar) SetView(name string) {
	m.view = name
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage shows text in place of the record info. A positive duration
// returns a Cmd that clears it again.
func (m *StatusBar) SetMessage(text string, d time.Duration) tea.Cmd {
	m.message = text
	m.seq++
	if d <= 0 {
		return nil
	}
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Message returns the current temporary message.
func (m StatusBar) Message() string {
	return m.message
}

// Init implements tea.Model.
func (m StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		// A newer message replaced the one this tick belongs to.
		if msg.seq == m.seq {
			m.message = ""
		}
	}
	return m, nil
}

// View renders the status bar.
func (m StatusBar) View() string {
	surface := lipgloss.NewStyle().Background(m.theme.Surface)
	barStyle := surface.Foreground(m.theme.Text).Width(m.width)

	var leftParts []string
	if m.message != "" {
		leftParts = append(leftParts, surface.Foreground(m.theme.Text).Render(m.message))
	} else if m.total == 0 {
		leftParts = append(leftParts, surface.Foreground(m.theme.Muted).Render("empty history"))
	} else {
		leftParts = append(leftParts, surface.Foreground(m.theme.Text).Bold(true).
			Render(fmt.Sprintf("%d/%d", m.position, m.total)))
		if !m.createdAt.IsZero() {
			leftParts = append(leftParts, surface.Foreground(m.theme.Subtext).
				Render(humanize.RelTime(m.createdAt, m.now(), "ago", "from now")))
		}
		if m.size > 0 {
			leftParts = append(leftParts, surface.Foreground(m.theme.Subtext).
				Render(humanize.IBytes(uint64(m.size))))
		}
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := surface.Foreground(m.theme.Accent).Bold(true).Render("[" + m.view + "]")
	hint := surface.Foreground(m.theme.Muted).Render("?:help  q:quit")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(modeStr)
	rightWidth := lipgloss.Width(hint)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent+2 >= m.width {
		line := " " + left + " " + modeStr + " " + hint
		return barStyle.Render(line)
	}

	remaining := m.width - totalContent - 2
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}
