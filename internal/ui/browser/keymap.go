package browser

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the browser keybindings.
type KeyMap struct {
	Quit             key.Binding
	Next             key.Binding
	Previous         key.Binding
	ToggleFullscreen key.Binding
	FocusCycle       key.Binding
	ScrollDown       key.Binding
	ScrollUp         key.Binding

	Help         key.Binding
	CopyPayload  key.Binding
	CopyResponse key.Binding
	CopyCurl     key.Binding
}

// DefaultKeyMap returns the browser keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next request"),
		),
		Previous: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous request"),
		),
		ToggleFullscreen: key.NewBinding(
			key.WithKeys("f", "enter"),
			key.WithHelp("f/enter", "toggle fullscreen"),
		),
		FocusCycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("J", "ctrl+d", "pgdown"),
			key.WithHelp("J/ctrl+d", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("K", "ctrl+u", "pgup"),
			key.WithHelp("K/ctrl+u", "scroll up"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CopyPayload: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy payload"),
		),
		CopyResponse: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy response"),
		),
		CopyCurl: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy as cURL"),
		),
	}
}

// Action maps a key press to a state machine action.
func (k KeyMap) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Next):
		return ActionNext
	case key.Matches(msg, k.Previous):
		return ActionPrevious
	case key.Matches(msg, k.ToggleFullscreen):
		return ActionToggleFullscreen
	case key.Matches(msg, k.FocusCycle):
		return ActionFocusCycle
	case key.Matches(msg, k.ScrollDown):
		return ActionScrollDown
	case key.Matches(msg, k.ScrollUp):
		return ActionScrollUp
	}
	return ActionNone
}
