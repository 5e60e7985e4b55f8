// Package browser is the interactive history browser: a list of logged
// requests next to their payload and response documents.
package browser

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/reqlog/internal/core/display"
	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/export"
	"github.com/sadopc/reqlog/internal/ui/components"
	"github.com/sadopc/reqlog/internal/ui/highlight"
	"github.com/sadopc/reqlog/internal/ui/layout"
	"github.com/sadopc/reqlog/internal/ui/msgs"
	"github.com/sadopc/reqlog/internal/ui/theme"
)

// Options configures a browser Model.
type Options struct {
	Theme theme.Theme
	// Formatter is the chroma formatter name used for document bodies.
	// Empty means plain text.
	Formatter string
	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Model is the root browser model.
type Model struct {
	state  State
	rows   []display.Row
	keys   KeyMap
	theme  theme.Theme
	styles theme.Styles
	layout layout.BrowserLayout

	formatter string
	copy      func(string) error
	rendered  map[string]string

	help      components.Help
	statusBar components.StatusBar
	toast     components.Toast

	width  int
	height int
	ready  bool
}

// New creates a browser over an already loaded set of rows.
func New(rows []display.Row, opts Options) Model {
	if opts.Theme.Name == "" {
		opts.Theme = theme.Default()
	}
	if opts.Formatter == "" {
		opts.Formatter = "noop"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	keys := DefaultKeyMap()
	m := Model{
		state:     NewState(rows),
		rows:      rows,
		keys:      keys,
		theme:     opts.Theme,
		styles:    theme.NewStyles(opts.Theme),
		formatter: opts.Formatter,
		copy:      opts.Clipboard,
		rendered:  make(map[string]string),
		help:      components.NewHelp(opts.Theme, helpSections(keys)),
		statusBar: components.NewStatusBar(opts.Theme),
		toast:     components.NewToast(opts.Theme),
	}
	m.syncStatus()
	return m
}

// FromSnapshot creates a browser over a loaded history snapshot.
func FromSnapshot(snap history.Snapshot, opts Options) Model {
	return New(display.Project(snap.Records()), opts)
}

func helpSections(k KeyMap) []components.HelpSection {
	return []components.HelpSection{
		{Title: "List", Bindings: []key.Binding{k.Next, k.Previous, k.ToggleFullscreen}},
		{Title: "Fullscreen", Bindings: []key.Binding{k.FocusCycle, k.ScrollDown, k.ScrollUp, k.ToggleFullscreen}},
		{Title: "General", Bindings: []key.Binding{k.CopyPayload, k.CopyResponse, k.CopyCurl, k.Help, k.Quit}},
	}
}

// State returns the current state machine value.
func (m Model) State() State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = layout.HandleResize(msg)
		m.help.SetSize(msg.Width, msg.Height)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.help.Visible {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case msgs.CopiedMsg:
		if msg.Err != nil {
			log.Printf("copy %s: %v", msg.What, msg.Err)
			return m, m.toast.Show("Clipboard error: "+msg.Err.Error(), true, 3*time.Second)
		}
		text := fmt.Sprintf("Copied %s (%s)", msg.What, humanize.IBytes(uint64(msg.Bytes)))
		return m, m.toast.Show(text, false, 2*time.Second)

	case msgs.ToastMsg:
		return m, m.toast.Show(msg.Text, msg.IsError, msg.Duration)

	case msgs.StatusMsg:
		return m, m.statusBar.SetMessage(msg.Text, msg.Duration)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.statusBar, cmd = m.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	m.toast, cmd = m.toast.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.CopyPayload):
		return m, m.copyPane(msgs.PanePayload)
	case key.Matches(msg, m.keys.CopyResponse):
		return m, m.copyPane(msgs.PaneResponse)
	case key.Matches(msg, m.keys.CopyCurl):
		return m, m.copyCurl()
	}

	action := m.keys.Action(msg)
	if action == ActionNone {
		return m, nil
	}

	next, quit := m.state.Apply(action)
	m.state = next
	if quit {
		return m, tea.Quit
	}
	m.syncStatus()
	return m, nil
}

// copyPane returns a Cmd writing the selected document to the clipboard.
func (m Model) copyPane(pane msgs.Pane) tea.Cmd {
	doc, ok := m.document(pane)
	if !ok || !doc.Present() {
		return nothingToCopy
	}

	text := display.Text(doc)
	if doc.Invalid {
		text = string(doc.Raw)
	}
	return m.copyText(pane.String(), text)
}

// copyCurl copies the selected request as a replayable curl command.
func (m Model) copyCurl() tea.Cmd {
	if m.state.Empty() {
		return nothingToCopy
	}
	row := m.rows[m.state.Selected]
	return m.copyText("cURL", export.AsCurl(history.Record{
		Method:  row.Method,
		FullURL: row.URL,
		Payload: row.Payload,
	}))
}

func (m Model) copyText(what, text string) tea.Cmd {
	write := m.copy
	return func() tea.Msg {
		return msgs.CopiedMsg{What: what, Bytes: len(text), Err: write(text)}
	}
}

func nothingToCopy() tea.Msg {
	return msgs.ToastMsg{Text: "Nothing to copy", IsError: true, Duration: 2 * time.Second}
}

func (m Model) document(pane msgs.Pane) (history.Document, bool) {
	if pane == msgs.PaneResponse {
		return m.state.Response()
	}
	return m.state.Payload()
}

func (m *Model) syncStatus() {
	m.statusBar.SetView(m.state.View.String())
	if m.state.Empty() {
		m.statusBar.SetRecord(0, 0, 0, time.Time{})
		return
	}

	row := m.rows[m.state.Selected]
	size := row.Payload.Size()
	if m.state.View.Focus() == FocusResponse {
		size = row.Response.Size()
	}
	m.statusBar.SetRecord(m.state.Selected+1, m.state.Len(), size, row.CreatedAt)
}

// body returns the rendered text for a document pane along with whether it
// is a placeholder.
func (m Model) body(pane msgs.Pane) (string, bool) {
	selected, ok := m.state.SelectedKey()
	if !ok {
		return display.NoRequests, true
	}
	doc, ok := m.document(pane)
	if !ok {
		return display.Missing, true
	}
	text := display.Text(doc)
	if doc.Invalid || !doc.Present() {
		return text, true
	}

	cacheKey := fmt.Sprintf("%d:%s", pane, selected)
	if cached, ok := m.rendered[cacheKey]; ok {
		return cached, false
	}
	out := highlight.JSON(text, m.formatter)
	m.rendered[cacheKey] = out
	return out, false
}
