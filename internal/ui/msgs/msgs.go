// Package msgs holds the tea.Msg types shared by the browser and its
// components.
package msgs

import "time"

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	IsError  bool
	Duration time.Duration
}

// Pane names a document pane of the browser.
type Pane int

const (
	PanePayload Pane = iota
	PaneResponse
)

func (p Pane) String() string {
	switch p {
	case PanePayload:
		return "payload"
	case PaneResponse:
		return "response"
	default:
		return "unknown"
	}
}

// CopiedMsg reports the result of a clipboard write. What names the
// copied content, e.g. "payload" or "cURL".
type CopiedMsg struct {
	What  string
	Bytes int
	Err   error
}
