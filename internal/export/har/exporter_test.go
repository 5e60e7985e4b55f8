package har

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sadopc/reqlog/internal/core/history"
)

func TestExport(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []history.Record{
		{
			ID:        1,
			Method:    "post",
			Service:   "users",
			RouteURL:  "create",
			FullURL:   "https://api.example.com/users?version=2",
			Payload:   history.Document{Raw: json.RawMessage(`{"name":"John"}`)},
			Response:  history.Document{Raw: json.RawMessage(`{"id":1}`)},
			CreatedAt: created,
		},
		{
			ID:        2,
			Method:    "GET",
			Service:   "users",
			FullURL:   "https://api.example.com/users",
			CreatedAt: created.Add(time.Minute),
		},
	}

	data, err := Export(records, "1.0.0")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var har HAR
	if err := json.Unmarshal(data, &har); err != nil {
		t.Fatalf("exported HAR is not valid JSON: %v", err)
	}

	if har.Log.Version != "1.2" {
		t.Errorf("expected version 1.2, got %s", har.Log.Version)
	}
	if har.Log.Creator.Name != "reqlog" || har.Log.Creator.Version != "1.0.0" {
		t.Errorf("unexpected creator %+v", har.Log.Creator)
	}
	if len(har.Log.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(har.Log.Entries))
	}

	first := har.Log.Entries[0]
	if first.StartedDateTime != "2025-03-01T12:00:00Z" {
		t.Errorf("startedDateTime = %s", first.StartedDateTime)
	}
	if first.Request.Method != "POST" {
		t.Errorf("method = %s, want POST", first.Request.Method)
	}
	if first.Request.PostData == nil || first.Request.PostData.Text != `{"name":"John"}` {
		t.Errorf("unexpected postData %+v", first.Request.PostData)
	}
	if len(first.Request.QueryString) != 1 || first.Request.QueryString[0].Value != "2" {
		t.Errorf("unexpected queryString %+v", first.Request.QueryString)
	}
	if first.Response.Content.Text != `{"id":1}` || first.Response.Content.Size != 8 {
		t.Errorf("unexpected response content %+v", first.Response.Content)
	}
	if first.Comment != "users create" {
		t.Errorf("comment = %q", first.Comment)
	}

	second := har.Log.Entries[1]
	if second.Request.PostData != nil {
		t.Error("absent payload should have no postData")
	}
	if second.Response.BodySize != -1 || second.Response.Content.Text != "" {
		t.Errorf("absent response should be empty, got %+v", second.Response)
	}
}

func TestExport_Empty(t *testing.T) {
	data, err := Export(nil, "dev")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var har HAR
	if err := json.Unmarshal(data, &har); err != nil {
		t.Fatalf("exported HAR is not valid JSON: %v", err)
	}
	if har.Log.Entries == nil || len(har.Log.Entries) != 0 {
		t.Fatalf("expected empty entries array, got %#v", har.Log.Entries)
	}
}
