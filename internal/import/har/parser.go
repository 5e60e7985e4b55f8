// Package har reads HTTP Archive files into history records.
package har

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sadopc/reqlog/internal/core/history"
)

// ErrNoEntries is returned for a HAR file without usable entries.
var ErrNoEntries = errors.New("HAR file contains no entries")

// HAR represents the subset of the HAR 1.2 format read on import.
type HAR struct {
	Log HARLog `json:"log"`
}

// HARLog is the top-level log object.
type HARLog struct {
	Version string     `json:"version"`
	Creator *Creator   `json:"creator,omitempty"`
	Entries []HAREntry `json:"entries"`
}

// Creator identifies the tool that created the HAR.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HAREntry represents a single request/response pair.
type HAREntry struct {
	StartedDateTime string      `json:"startedDateTime"`
	Request         HARRequest  `json:"request"`
	Response        HARResponse `json:"response"`
}

// HARRequest is the request portion of an entry.
type HARRequest struct {
	Method   string       `json:"method"`
	URL      string       `json:"url"`
	PostData *HARPostData `json:"postData,omitempty"`
}

// HARResponse is the response portion of an entry.
type HARResponse struct {
	Status  int        `json:"status"`
	Content HARContent `json:"content"`
}

// HARPostData is the body of a request.
type HARPostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// HARContent is the body of a response.
type HARContent struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
	Encoding string `json:"encoding,omitempty"`
}

// ParseHAR parses a HAR file into records ready for insertion, in file
// order. Service and route come from the URL host and path. Bodies that are
// not JSON are dropped; the history only keeps JSON documents.
func ParseHAR(data []byte) ([]history.NewRecord, error) {
	var har HAR
	if err := json.Unmarshal(data, &har); err != nil {
		return nil, fmt.Errorf("parsing HAR: %w", err)
	}

	records := make([]history.NewRecord, 0, len(har.Log.Entries))
	for _, entry := range har.Log.Entries {
		if entry.Request.URL == "" {
			continue
		}
		records = append(records, convertEntry(entry))
	}
	if len(records) == 0 {
		return nil, ErrNoEntries
	}
	return records, nil
}

func convertEntry(entry HAREntry) history.NewRecord {
	method := strings.ToUpper(entry.Request.Method)
	if method == "" {
		method = "GET"
	}

	r := history.NewRecord{
		Method:  method,
		FullURL: entry.Request.URL,
	}

	if u, err := url.Parse(entry.Request.URL); err == nil {
		r.Service = u.Hostname()
		r.RouteURL = strings.TrimPrefix(u.Path, "/")
	}

	if pd := entry.Request.PostData; pd != nil {
		r.Payload = jsonBody(pd.Text)
	}
	if entry.Response.Content.Encoding == "" {
		r.Response = jsonBody(entry.Response.Content.Text)
	}

	if t, err := time.Parse(time.RFC3339Nano, entry.StartedDateTime); err == nil {
		r.CreatedAt = t.UTC()
	}

	return r
}

func jsonBody(text string) json.RawMessage {
	text = strings.TrimSpace(text)
	if text == "" || !json.Valid([]byte(text)) {
		return nil
	}
	return json.RawMessage(text)
}
