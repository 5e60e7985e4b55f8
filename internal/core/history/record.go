package history

import (
	"bytes"
	"encoding/json"
	"time"
)

// Record is one logged request/response pair as stored on disk.
type Record struct {
	ID        int64
	Method    string
	Service   string
	RouteURL  string
	FullURL   string
	Payload   Document
	Response  Document
	CreatedAt time.Time
}

// NewRecord holds the caller-supplied fields of a record. The ID is
// assigned by the Store on insert.
type NewRecord struct {
	Method   string
	Service  string
	RouteURL string
	FullURL  string
	Payload  json.RawMessage
	Response json.RawMessage
	// CreatedAt is used for imported history; zero means now.
	CreatedAt time.Time
}

// Document is an optional JSON value. Raw is nil when the value is absent.
// Invalid is set when stored text could not be parsed; Raw then keeps the
// original text.
type Document struct {
	Raw     json.RawMessage
	Invalid bool
}

// Present reports whether the record carried a value for this field.
func (d Document) Present() bool {
	return len(d.Raw) > 0 || d.Invalid
}

// Size returns the length of the stored text in bytes.
func (d Document) Size() int {
	return len(d.Raw)
}

func parseDocument(text string, valid bool) Document {
	if !valid {
		return Document{}
	}
	raw := []byte(text)
	if !json.Valid(raw) {
		return Document{Raw: raw, Invalid: true}
	}
	return Document{Raw: json.RawMessage(raw)}
}

func compactJSON(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
