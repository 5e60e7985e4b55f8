package browser

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/reqlog/internal/core/display"
	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/ui/msgs"
)

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestModel(t *testing.T, rows []display.Row) Model {
	t.Helper()
	m := New(rows, Options{
		Formatter: "noop",
		Clipboard: func(string) error { return errors.New("no clipboard in tests") },
	})
	return sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func sendMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return bm
}

func sendKeys(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m = sendMsg(t, m, k)
	}
	return m
}

func TestModel_LoadingBeforeResize(t *testing.T) {
	m := New(testRows(1), Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestModel_EmptyHistoryShowsPlaceholders(t *testing.T) {
	m := newTestModel(t, nil)

	if got := strings.Count(m.View(), display.NoRequests); got < 3 {
		t.Fatalf("expected placeholder in every pane, found %d", got)
	}

	m = sendKeys(t, m, keyMsg("j"), keyMsg("k"), keyMsg("J"), keyMsg("K"))
	if s := m.State(); s.Selected != 0 || s.PayloadOffset != 0 || s.ResponseOffset != 0 {
		t.Fatalf("navigation changed empty state: %+v", s)
	}

	m = sendKeys(t, m, keyMsg("f"))
	if got := strings.Count(m.View(), display.NoRequests); got < 2 {
		t.Fatalf("expected placeholder in both fullscreen panes, found %d", got)
	}
}

func TestModel_GridFollowsSelection(t *testing.T) {
	m := newTestModel(t, testRows(3))

	view := m.View()
	if !strings.Contains(view, `"n": 0`) {
		t.Fatalf("grid view missing first payload:\n%s", view)
	}
	if !strings.Contains(view, "Requests (3)") {
		t.Fatalf("grid view missing list title:\n%s", view)
	}

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.State().Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.State().Selected)
	}
	if !strings.Contains(m.View(), `"n": 1`) {
		t.Fatal("payload pane did not follow selection")
	}
}

func TestModel_NextWrapsAfterThree(t *testing.T) {
	m := newTestModel(t, testRows(3))
	m = sendKeys(t, m, keyMsg("j"), keyMsg("j"), keyMsg("j"))
	if m.State().Selected != 0 {
		t.Fatalf("Selected = %d, want 0", m.State().Selected)
	}
}

func TestModel_FullscreenScrollKeys(t *testing.T) {
	m := newTestModel(t, testRows(3))

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().View != FullscreenPayload {
		t.Fatalf("View = %v, want PAYLOAD", m.State().View)
	}
	if strings.Contains(m.View(), "Requests (3)") {
		t.Fatal("fullscreen view should not render the list")
	}

	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State().View != FullscreenResponse {
		t.Fatalf("View = %v, want RESPONSE", m.State().View)
	}

	for range 5 {
		m = sendKeys(t, m, keyMsg("J"))
	}
	if m.State().ResponseOffset != 5 {
		t.Fatalf("ResponseOffset = %d, want 5", m.State().ResponseOffset)
	}
	for range 10 {
		m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	}
	if m.State().ResponseOffset != 0 {
		t.Fatalf("ResponseOffset = %d, want 0", m.State().ResponseOffset)
	}

	m = sendKeys(t, m, keyMsg("f"))
	if m.State().View != GridList {
		t.Fatalf("View = %v, want LIST", m.State().View)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, testRows(1))
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q: expected quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q: expected tea.QuitMsg", k.String())
		}
	}
}

func TestModel_MissingMappingShowsPlaceholder(t *testing.T) {
	m := newTestModel(t, testRows(2))
	delete(m.state.responses, m.state.keys[0])

	if !strings.Contains(m.View(), display.Missing) {
		t.Fatal("expected missing placeholder")
	}
}

func TestModel_InvalidAndAbsentDocuments(t *testing.T) {
	rows := []display.Row{{
		Key:      "#1 GET svc r",
		Method:   "GET",
		Payload:  history.Document{Raw: []byte("{broken"), Invalid: true},
		Response: history.Document{},
	}}
	m := newTestModel(t, rows)

	view := m.View()
	if !strings.Contains(view, display.InvalidJSON) {
		t.Error("expected invalid json placeholder")
	}
	if !strings.Contains(view, display.Null) {
		t.Error("expected null placeholder for absent response")
	}
}

func TestModel_CopyPayload(t *testing.T) {
	var copied string
	m := New(testRows(2), Options{
		Formatter: "noop",
		Clipboard: func(s string) error { copied = s; return nil },
	})
	m = sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	_, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	msg, ok := cmd().(msgs.CopiedMsg)
	if !ok {
		t.Fatalf("expected CopiedMsg, got %T", cmd())
	}
	if msg.What != "payload" || msg.Err != nil {
		t.Fatalf("unexpected CopiedMsg: %+v", msg)
	}
	if copied != "{\n  \"n\": 0\n}" {
		t.Fatalf("copied %q", copied)
	}

	m = sendMsg(t, m, msg)
	if !m.toast.Visible || !strings.Contains(m.toast.Text(), "Copied payload") {
		t.Fatalf("expected success toast, got %q", m.toast.Text())
	}
}

func TestModel_CopyCurl(t *testing.T) {
	var copied string
	m := New(testRows(2), Options{
		Formatter: "noop",
		Clipboard: func(s string) error { copied = s; return nil },
	})
	m = sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = sendKeys(t, m, keyMsg("j"))

	_, cmd := m.Update(keyMsg("c"))
	msg, ok := cmd().(msgs.CopiedMsg)
	if !ok || msg.What != "cURL" {
		t.Fatalf("unexpected message %+v", msg)
	}
	want := `curl -H 'Content-Type: application/json' -d '{"n":1}' 'https://api.example.com/route1'`
	if copied != want {
		t.Fatalf("copied %q, want %q", copied, want)
	}
}

func TestModel_CopyFailureShowsError(t *testing.T) {
	m := newTestModel(t, testRows(1))

	_, cmd := m.Update(keyMsg("Y"))
	m = sendMsg(t, m, cmd())
	if !m.toast.IsError() {
		t.Fatal("expected error toast")
	}
}

func TestModel_CopyNothing(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(keyMsg("y"))
	msg, ok := cmd().(msgs.ToastMsg)
	if !ok || !msg.IsError {
		t.Fatalf("expected error toast message, got %+v", msg)
	}
}

func TestModel_HelpCapturesKeys(t *testing.T) {
	m := newTestModel(t, testRows(3))

	m = sendKeys(t, m, keyMsg("?"))
	if !m.help.Visible {
		t.Fatal("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}

	m = sendKeys(t, m, keyMsg("j"))
	if m.State().Selected != 0 {
		t.Fatal("navigation leaked through help overlay")
	}

	m = sendKeys(t, m, keyMsg("?"))
	if m.help.Visible {
		t.Fatal("help not closed")
	}
}

func TestModel_StatusMessage(t *testing.T) {
	m := newTestModel(t, testRows(1))
	m = sendMsg(t, m, msgs.StatusMsg{Text: "loaded 1 request"})
	if !strings.Contains(m.View(), "loaded 1 request") {
		t.Fatal("status message not rendered")
	}
}

func TestFromSnapshot(t *testing.T) {
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, route := range []string{"users", "orders"} {
		_, err := store.Insert(ctx, history.NewRecord{
			Method:   "POST",
			Service:  "shop",
			RouteURL: route,
			FullURL:  "https://shop.example.com/" + route,
			Payload:  json.RawMessage(`{"route":"` + route + `"}`),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	snap, err := history.LoadSnapshot(ctx, store)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	m := FromSnapshot(snap, Options{Formatter: "noop"})
	if m.State().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.State().Len())
	}
	m = sendMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(m.View(), "https://shop.example.com/users") {
		t.Fatal("list missing first record URL")
	}
}
