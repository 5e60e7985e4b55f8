// Package har writes logged requests as an HTTP Archive (HAR 1.2) log.
package har

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/sadopc/reqlog/internal/core/history"
)

// HAR represents the HAR 1.2 format for export.
type HAR struct {
	Log HARLog `json:"log"`
}

// HARLog is the top-level log object.
type HARLog struct {
	Version string     `json:"version"`
	Creator HARCreator `json:"creator"`
	Entries []HAREntry `json:"entries"`
}

// HARCreator identifies the tool that created the HAR.
type HARCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HAREntry represents a single request/response pair.
type HAREntry struct {
	StartedDateTime string      `json:"startedDateTime"`
	Time            float64     `json:"time"`
	Request         HARRequest  `json:"request"`
	Response        HARResponse `json:"response"`
	Timings         HARTimings  `json:"timings"`
	Comment         string      `json:"comment,omitempty"`
}

// HARRequest is the request portion of an entry.
type HARRequest struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Headers     []HARHeader  `json:"headers"`
	QueryString []HARQuery   `json:"queryString"`
	PostData    *HARPostData `json:"postData,omitempty"`
	HeadersSize int          `json:"headersSize"`
	BodySize    int          `json:"bodySize"`
}

// HARResponse is the response portion of an entry. The history does not
// keep status lines or headers, so those are left empty.
type HARResponse struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText"`
	HTTPVersion string      `json:"httpVersion"`
	Headers     []HARHeader `json:"headers"`
	Content     HARContent  `json:"content"`
	RedirectURL string      `json:"redirectURL"`
	HeadersSize int         `json:"headersSize"`
	BodySize    int         `json:"bodySize"`
}

// HARHeader is a name/value pair for headers.
type HARHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARQuery is a name/value pair for query string parameters.
type HARQuery struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARPostData is the body of a request.
type HARPostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// HARContent is the body of a response.
type HARContent struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
}

// HARTimings holds timing info for an entry. The history has none, so all
// phases are reported as unknown.
type HARTimings struct {
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

const jsonMime = "application/json"

// Export creates a HAR 1.2 document with one entry per record, in order.
func Export(records []history.Record, creatorVersion string) ([]byte, error) {
	entries := make([]HAREntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, buildEntry(r))
	}

	har := HAR{
		Log: HARLog{
			Version: "1.2",
			Creator: HARCreator{Name: "reqlog", Version: creatorVersion},
			Entries: entries,
		},
	}
	return json.MarshalIndent(har, "", "  ")
}

func buildEntry(r history.Record) HAREntry {
	return HAREntry{
		StartedDateTime: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		Time:            -1,
		Request:         buildHARRequest(r),
		Response:        buildHARResponse(r.Response),
		Timings:         HARTimings{Send: -1, Wait: -1, Receive: -1},
		Comment:         strings.TrimSpace(r.Service + " " + r.RouteURL),
	}
}

func buildHARRequest(r history.Record) HARRequest {
	harReq := HARRequest{
		Method:      strings.ToUpper(r.Method),
		URL:         r.FullURL,
		HTTPVersion: "HTTP/1.1",
		Headers:     []HARHeader{},
		QueryString: []HARQuery{},
		HeadersSize: -1,
		BodySize:    0,
	}

	if u, err := url.Parse(r.FullURL); err == nil {
		for k, vals := range u.Query() {
			for _, v := range vals {
				harReq.QueryString = append(harReq.QueryString, HARQuery{Name: k, Value: v})
			}
		}
	}

	if r.Payload.Present() {
		harReq.Headers = append(harReq.Headers, HARHeader{Name: "Content-Type", Value: jsonMime})
		harReq.PostData = &HARPostData{MimeType: jsonMime, Text: string(r.Payload.Raw)}
		harReq.BodySize = r.Payload.Size()
	}

	return harReq
}

func buildHARResponse(d history.Document) HARResponse {
	harResp := HARResponse{
		HTTPVersion: "HTTP/1.1",
		Headers:     []HARHeader{},
		HeadersSize: -1,
		BodySize:    -1,
		Content:     HARContent{MimeType: jsonMime},
	}
	if d.Present() {
		harResp.BodySize = d.Size()
		harResp.Content.Size = d.Size()
		harResp.Content.Text = string(d.Raw)
	}
	return harResp
}
