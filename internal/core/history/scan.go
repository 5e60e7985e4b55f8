package history

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Columns every result set must carry. payload and response_json are
// optional so that narrower projections still decode.
var requiredColumns = []string{"id", "method", "service", "route_url", "full_url", "created_at"}

// rowFields receives one scanned row. Destinations are chosen by column
// name, so column order in the query does not matter.
type rowFields struct {
	id        int64
	method    string
	service   string
	routeURL  string
	fullURL   string
	payload   sql.NullString
	response  sql.NullString
	createdAt string
}

func (f *rowFields) dest(column string) any {
	switch column {
	case "id":
		return &f.id
	case "method":
		return &f.method
	case "service":
		return &f.service
	case "route_url":
		return &f.routeURL
	case "full_url":
		return &f.fullURL
	case "payload":
		return &f.payload
	case "response_json":
		return &f.response
	case "created_at":
		return &f.createdAt
	default:
		return nil
	}
}

func (f *rowFields) record() Record {
	r := Record{
		ID:       f.id,
		Method:   f.method,
		Service:  f.service,
		RouteURL: f.routeURL,
		FullURL:  f.fullURL,
		Payload:  parseDocument(f.payload.String, f.payload.Valid),
		Response: parseDocument(f.response.String, f.response.Valid),
	}
	// A bad timestamp degrades this record only; it keeps the zero time.
	if t, err := parseTime(f.createdAt); err == nil {
		r.CreatedAt = t
	} else {
		log.Printf("history: request %d has unreadable created_at %q", f.id, f.createdAt)
	}
	return r
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	for i, c := range columns {
		columns[i] = strings.ToLower(c)
	}
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	var records []Record
	for rows.Next() {
		var f rowFields
		dests := make([]any, len(columns))
		for i, c := range columns {
			if d := f.dest(c); d != nil {
				dests[i] = d
			} else {
				dests[i] = new(any)
			}
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scanning request row: %w", err)
		}
		records = append(records, f.record())
	}
	return records, rows.Err()
}

func checkColumns(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	for _, want := range requiredColumns {
		if !have[want] {
			return fmt.Errorf("result is missing column %q", want)
		}
	}
	return nil
}
