package browser

import (
	"github.com/sadopc/reqlog/internal/core/display"
	"github.com/sadopc/reqlog/internal/core/history"
)

// Mode is the browser layout.
type Mode int

const (
	ModeGrid Mode = iota
	ModeFullscreen
)

// Focus is the pane receiving scroll input.
type Focus int

const (
	FocusList Focus = iota
	FocusPayload
	FocusResponse
)

// View enumerates the valid (mode, focus) pairs. Grid mode only ever
// focuses the list; fullscreen focuses one of the two document panes.
type View int

const (
	GridList View = iota
	FullscreenPayload
	FullscreenResponse
)

// Mode returns the layout of the view.
func (v View) Mode() Mode {
	if v == GridList {
		return ModeGrid
	}
	return ModeFullscreen
}

// Focus returns the focused pane of the view.
func (v View) Focus() Focus {
	switch v {
	case FullscreenPayload:
		return FocusPayload
	case FullscreenResponse:
		return FocusResponse
	default:
		return FocusList
	}
}

func (v View) String() string {
	switch v {
	case FullscreenPayload:
		return "PAYLOAD"
	case FullscreenResponse:
		return "RESPONSE"
	default:
		return "LIST"
	}
}

// Action is one input to the state machine.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNext
	ActionPrevious
	ActionToggleFullscreen
	ActionFocusCycle
	ActionScrollDown
	ActionScrollUp
)

// State is the browser's session state. It is a value; Apply returns the
// next state without touching the receiver.
type State struct {
	keys      []string
	payloads  map[string]history.Document
	responses map[string]history.Document

	Selected       int
	View           View
	PayloadOffset  int
	ResponseOffset int
}

// NewState builds the initial state from projected rows.
func NewState(rows []display.Row) State {
	s := State{
		keys:      make([]string, len(rows)),
		payloads:  make(map[string]history.Document, len(rows)),
		responses: make(map[string]history.Document, len(rows)),
	}
	for i, r := range rows {
		s.keys[i] = r.Key
		s.payloads[r.Key] = r.Payload
		s.responses[r.Key] = r.Response
	}
	return s
}

// Len returns the number of rows.
func (s State) Len() int {
	return len(s.keys)
}

// Empty reports whether there are no rows.
func (s State) Empty() bool {
	return len(s.keys) == 0
}

// SelectedKey returns the key of the selected row, or false when empty.
func (s State) SelectedKey() (string, bool) {
	if s.Selected < 0 || s.Selected >= len(s.keys) {
		return "", false
	}
	return s.keys[s.Selected], true
}

// Payload returns the selected row's payload. ok is false when the history
// is empty or the key has no entry in the payload mapping.
func (s State) Payload() (history.Document, bool) {
	return s.lookup(s.payloads)
}

// Response is Payload for the response mapping.
func (s State) Response() (history.Document, bool) {
	return s.lookup(s.responses)
}

func (s State) lookup(m map[string]history.Document) (history.Document, bool) {
	key, ok := s.SelectedKey()
	if !ok {
		return history.Document{}, false
	}
	d, ok := m[key]
	return d, ok
}

// Apply returns the state after action a and whether the loop should stop.
func (s State) Apply(a Action) (State, bool) {
	n := len(s.keys)

	switch a {
	case ActionQuit:
		return s, true

	case ActionNext:
		if s.View.Mode() == ModeGrid && n > 0 {
			s.Selected = (s.Selected + 1) % n
		}

	case ActionPrevious:
		if s.View.Mode() == ModeGrid && n > 0 {
			s.Selected = (s.Selected - 1 + n) % n
		}

	case ActionToggleFullscreen:
		if s.View.Mode() == ModeGrid {
			s.View = FullscreenPayload
		} else {
			s.View = GridList
		}

	case ActionFocusCycle:
		switch s.View {
		case FullscreenPayload:
			s.View = FullscreenResponse
		case FullscreenResponse:
			s.View = FullscreenPayload
		}

	case ActionScrollDown:
		if n == 0 {
			break
		}
		switch s.View.Focus() {
		case FocusPayload:
			s.PayloadOffset++
		case FocusResponse:
			s.ResponseOffset++
		}

	case ActionScrollUp:
		if n == 0 {
			break
		}
		switch s.View.Focus() {
		case FocusPayload:
			s.PayloadOffset = max(0, s.PayloadOffset-1)
		case FocusResponse:
			s.ResponseOffset = max(0, s.ResponseOffset-1)
		}
	}

	return s, false
}
