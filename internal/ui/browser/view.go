package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/reqlog/internal/core/display"
	"github.com/sadopc/reqlog/internal/ui/msgs"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var panels string
	if m.state.View.Mode() == ModeGrid {
		right := lipgloss.JoinVertical(lipgloss.Left,
			m.renderDocument(msgs.PanePayload, m.layout.DetailWidth, m.layout.PayloadHeight, false, 0),
			m.renderDocument(msgs.PaneResponse, m.layout.DetailWidth, m.layout.ResponseHeight, false, 0),
		)
		panels = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(m.layout.ListWidth, m.layout.ContentHeight),
			right,
		)
	} else {
		focus := m.state.View.Focus()
		panels = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderDocument(msgs.PanePayload, m.layout.LeftWidth, m.layout.ContentHeight,
				focus == FocusPayload, m.state.PayloadOffset),
			m.renderDocument(msgs.PaneResponse, m.layout.RightWidth, m.layout.ContentHeight,
				focus == FocusResponse, m.state.ResponseOffset),
		)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, panels, m.statusBar.View())

	if m.help.Visible {
		main = overlayCenter(m.help.View(), m.width, m.height)
	}
	if m.toast.Visible {
		main = overlayTopRight(main, m.toast.View(), m.width)
	}
	return main
}

// renderList draws the request list with the selected entry highlighted.
func (m Model) renderList(w, h int) string {
	border := m.styles.UnfocusedBorder
	if m.state.View.Focus() == FocusList {
		border = m.styles.FocusedBorder
	}
	innerW, innerH := inner(w, h)

	lines := []string{m.styles.Title.Render(fmt.Sprintf("Requests (%d)", m.state.Len()))}
	visible := innerH - 1

	if m.state.Empty() {
		lines = append(lines, m.styles.Muted.Render(display.NoRequests))
	} else {
		start := 0
		if visible > 0 && m.state.Selected >= visible {
			start = m.state.Selected - visible + 1
		}
		end := min(len(m.rows), start+max(visible, 0))
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, innerW))
		}
	}

	return border.Width(innerW).Height(innerH).Render(fitHeight(strings.Join(lines, "\n"), innerH))
}

func (m Model) renderRow(i, width int) string {
	row := m.rows[i]
	target := row.URL
	if target == "" {
		target = row.Key
	}
	method := padMethod(row.Method)

	if i == m.state.Selected {
		plain := ansi.Truncate(method+" "+row.Service+" "+target, width, "…")
		return m.styles.Selected.Width(width).Render(plain)
	}

	line := m.styles.MethodStyle(row.Method).Render(method) + " " +
		m.styles.Service.Render(row.Service) + " " +
		m.styles.URL.Render(target)
	return ansi.Truncate(line, width, "…")
}

// renderDocument draws the payload or response pane scrolled to offset.
func (m Model) renderDocument(pane msgs.Pane, w, h int, focused bool, offset int) string {
	border := m.styles.UnfocusedBorder
	if focused {
		border = m.styles.FocusedBorder
	}
	innerW, innerH := inner(w, h)

	title := "Payload"
	if pane == msgs.PaneResponse {
		title = "Response"
	}
	if doc, ok := m.document(pane); ok && doc.Present() {
		title += m.styles.Muted.Render(" · " + humanize.IBytes(uint64(doc.Size())))
	}

	text, placeholder := m.body(pane)
	if placeholder {
		text = m.styles.Muted.Render(text)
	}

	vp := viewport.New(innerW, max(innerH-1, 0))
	vp.SetContent(truncateLines(text, innerW))
	vp.SetYOffset(offset)

	content := m.styles.Title.Render(title) + "\n" + vp.View()
	return border.Width(innerW).Height(innerH).Render(fitHeight(content, innerH))
}

func inner(w, h int) (int, int) {
	return max(w-2, 1), max(h-2, 1)
}

// padMethod pads an HTTP method to 6 chars.
func padMethod(method string) string {
	method = strings.ToUpper(method)
	if len(method) >= 6 {
		return method[:6]
	}
	return method + strings.Repeat(" ", 6-len(method))
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncateLines(s string, w int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "")
	}
	return strings.Join(lines, "\n")
}

func overlayCenter(overlay string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

// overlayTopRight draws overlay over the top right corner of bg.
func overlayTopRight(bg, overlay string, width int) string {
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(bgLines) {
			break
		}
		gap := max(width-lipgloss.Width(line)-1, 0)
		left := ansi.Truncate(bgLines[i], gap, "")
		if pad := gap - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		bgLines[i] = left + line
	}
	return strings.Join(bgLines, "\n")
}
