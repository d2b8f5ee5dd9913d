package course

import "context"

// Snapshot is the full persisted state of the planner.
type Snapshot struct {
	Courses []*Course
	NextID  int64
}

// Store persists planner snapshots. The in-memory collection is the
// authoritative value; a store only receives completed snapshots after a
// mutation and hands them back unchanged as the load-time seed.
type Store interface {
	// Load reads the persisted snapshot. A missing or empty store
	// returns an empty snapshot, not an error.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the persisted snapshot wholesale.
	Save(ctx context.Context, snap Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
