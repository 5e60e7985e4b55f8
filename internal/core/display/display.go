// Package display maps stored records to rows ready for rendering.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"github.com/sadopc/reqlog/internal/core/history"
)

// Placeholder texts shown instead of a document body.
const (
	NoRequests  = "No requests"
	Missing     = "<missing>"
	InvalidJSON = "<invalid json>"
	Null        = "null"
)

// Row is the display projection of one record.
type Row struct {
	// Key is unique per record and carries the record ID.
	Key       string
	Method    string
	Service   string
	URL       string
	CreatedAt time.Time
	Payload   history.Document
	Response  history.Document
}

// Project returns one Row per record, in the same order.
func Project(records []history.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Key:       Key(r),
			Method:    r.Method,
			Service:   r.Service,
			URL:       r.FullURL,
			CreatedAt: r.CreatedAt,
			Payload:   r.Payload,
			Response:  r.Response,
		}
	}
	return rows
}

// Key builds the lookup key for a record: its ID followed by a readable
// summary.
func Key(r history.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d", r.ID)
	for _, part := range []string{strings.ToUpper(r.Method), r.Service, r.RouteURL} {
		if part != "" {
			b.WriteByte(' ')
			b.WriteString(part)
		}
	}
	return b.String()
}

// Text renders a document as indented JSON, or as the matching placeholder
// when it is absent or unreadable.
func Text(d history.Document) string {
	switch {
	case d.Invalid:
		return InvalidJSON
	case !d.Present():
		return Null
	default:
		return strings.TrimRight(string(pretty.Pretty(d.Raw)), "\n")
	}
}
