package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// schemaVersion is written to PRAGMA user_version.
const schemaVersion = 1

// timeLayout is fixed width so that text comparison in SQL orders the same
// way as time comparison.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectRequests = `
	SELECT id, method, service, route_url, full_url, payload, response_json, created_at
	FROM requests`

// Store manages the request log.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the store at path, creating parent directories as
// needed, and ensures the schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating directory %s: %w", ErrConnection, dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrConnection, path, err)
	}
	// One session owns one connection; this also keeps ":memory:" stores
	// from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: opening %s: %w", ErrConnection, path, err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("%w: reading version: %w", ErrSchema, err)
	}
	if version > schemaVersion {
		return fmt.Errorf("%w: store version %d is newer than supported version %d", ErrSchema, version, schemaVersion)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			method        TEXT NOT NULL,
			service       TEXT NOT NULL,
			route_url     TEXT NOT NULL,
			full_url      TEXT NOT NULL,
			payload       TEXT,
			response_json TEXT,
			created_at    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);
		CREATE INDEX IF NOT EXISTS idx_requests_service ON requests(service, created_at);
	`)
	if err != nil {
		return fmt.Errorf("%w: creating requests table: %w", ErrSchema, err)
	}

	if version < schemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("%w: writing version: %w", ErrSchema, err)
		}
	}
	return nil
}

// Insert appends one record and returns its ID. Records without a
// CreatedAt are stamped with the current time.
func (s *Store) Insert(ctx context.Context, r NewRecord) (int64, error) {
	payload, err := documentText(r.Payload)
	if err != nil {
		return 0, fmt.Errorf("payload: %w", err)
	}
	response, err := documentText(r.Response)
	if err != nil {
		return 0, fmt.Errorf("response: %w", err)
	}

	created := r.CreatedAt
	if created.IsZero() {
		created = s.now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (method, service, route_url, full_url, payload, response_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Method, r.Service, r.RouteURL, r.FullURL, payload, response,
		formatTime(created),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting request: %w", err)
	}
	return result.LastInsertId()
}

// QueryAll returns every record, oldest first.
func (s *Store) QueryAll(ctx context.Context) ([]Record, error) {
	return s.query(ctx, selectRequests+`
		ORDER BY created_at ASC, id ASC`)
}

// QueryByTimeRange returns records created strictly after since, oldest first.
func (s *Store) QueryByTimeRange(ctx context.Context, since time.Time) ([]Record, error) {
	return s.query(ctx, selectRequests+`
		WHERE created_at > ?
		ORDER BY created_at ASC, id ASC`, formatTime(since))
}

// QueryByServiceAndTimeRange is QueryByTimeRange restricted to one service.
func (s *Store) QueryByServiceAndTimeRange(ctx context.Context, service string, since time.Time) ([]Record, error) {
	return s.query(ctx, selectRequests+`
		WHERE service = ? AND created_at > ?
		ORDER BY created_at ASC, id ASC`, service, formatTime(since))
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return records, nil
}

func documentText(raw json.RawMessage) (sql.NullString, error) {
	if len(raw) == 0 {
		return sql.NullString{}, nil
	}
	text, err := compactJSON(raw)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return sql.NullString{String: text, Valid: true}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime also accepts RFC 3339 text written by older tools.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
