package history

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Querier is the read side of Store used by Loader.
type Querier interface {
	QueryAll(ctx context.Context) ([]Record, error)
}

// Snapshot is an immutable copy of the log taken at one point in time.
type Snapshot struct {
	records  []Record
	loadedAt time.Time
}

// Records returns a copy of the snapshot's records, oldest first.
func (s Snapshot) Records() []Record {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s Snapshot) Len() int {
	return len(s.records)
}

// LoadedAt returns when the fetch completed.
func (s Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Loader runs QueryAll once and hands out the result. It is meant to be
// called before an interactive loop starts; the call blocks until the data
// is available.
type Loader struct {
	q    Querier
	once sync.Once
	snap Snapshot
	err  error
}

// NewLoader creates a Loader reading from q.
func NewLoader(q Querier) *Loader {
	return &Loader{q: q}
}

// Load fetches the snapshot on the first call and returns the same result,
// including any error, on every later call.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	l.once.Do(func() {
		records, err := l.q.QueryAll(ctx)
		if err != nil {
			l.err = err
			return
		}
		l.snap = Snapshot{records: records, loadedAt: time.Now()}
	})
	return l.snap, l.err
}

// LoadSnapshot is shorthand for NewLoader(q).Load(ctx).
func LoadSnapshot(ctx context.Context, q Querier) (Snapshot, error) {
	return NewLoader(q).Load(ctx)
}
