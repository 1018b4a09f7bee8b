package rotation

import "context"

// =============================================================================
// SNAPSHOT STORE - Whole-schedule persistence interface
// =============================================================================

// SnapshotStore persists full Schedule snapshots by identity. The engine
// never partially persists: Save always writes the complete aggregate and
// Load always returns one. Implementations must hand out copies - a loaded
// schedule is the caller's to mutate.
type SnapshotStore interface {
	// Save stores the complete schedule, replacing any snapshot with the
	// same ID.
	Save(ctx context.Context, s *Schedule) error

	// Load returns the schedule with the given ID, or ErrScheduleNotFound.
	Load(ctx context.Context, id string) (*Schedule, error)

	// Delete removes a snapshot. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns all stored schedule IDs.
	List(ctx context.Context) ([]string, error)
}
