package history

import "errors"

var (
	// ErrConnection means the store file or its directory could not be
	// created or opened.
	ErrConnection = errors.New("history store unavailable")

	// ErrSchema means the requests table could not be created, or the file
	// was written by a newer schema version.
	ErrSchema = errors.New("history schema")

	// ErrQuery wraps failures of reads after the store is open.
	ErrQuery = errors.New("history query failed")

	// ErrInvalidJSON is returned by Insert when a payload or response is not
	// valid JSON.
	ErrInvalidJSON = errors.New("invalid json document")
)
