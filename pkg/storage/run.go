package storage

import (
	"context"
	"elekit/pkg/domain"
	"time"
)

// RunUpdates describes a set of optional fields that can be applied to an
// existing run during an update. Only non-nil fields will be updated
// (Status is always set).
type RunUpdates struct {
	// Status is the new status to set for the run.
	Status domain.RunStatus
	// Stats, when provided, replaces the stored stats payload.
	Stats *domain.RunStats
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// Duration, when provided, records the wall-clock time of the run.
	Duration *time.Duration
}

// RunCursor is a keyset pagination cursor pointing at the last run of a page.
// Ties on CreatedAt are broken by ID, so runs sharing a timestamp are never
// skipped at a page boundary.
type RunCursor struct {
	// CreatedAt is the creation time of the last run on the previous page.
	CreatedAt time.Time
	// ID is the ID of that run.
	ID domain.RunID
}

// RunsPage groups a page of runs together with an optional NextCursor used
// for pagination.
type RunsPage struct {
	// Runs contains the current page of run records, newest first.
	Runs []domain.Run
	// NextCursor is the cursor for fetching the next page. It is nil when
	// there is no next page.
	NextCursor *RunCursor
}

// RunStorage defines the operations of the run journal.
type RunStorage interface {
	// StoreRuns inserts one or more runs and returns the stored rows as they
	// exist in the database.
	StoreRuns(ctx context.Context, runs ...domain.Run) ([]domain.Run, error)
	// UpdateRunByID updates a single run identified by its ID and returns the
	// updated row, or nil when the run does not exist. updated_at is set
	// automatically.
	UpdateRunByID(ctx context.Context, ID domain.RunID, updates RunUpdates) (*domain.Run, error)
	// Runs returns a page of runs older than the optional cursor, limited by
	// the given limit and ordered newest first. A zero limit yields an empty
	// page.
	Runs(ctx context.Context, cursor *RunCursor, limit uint) (RunsPage, error)
	// RunByID fetches a run by its ID. Returns nil when not found.
	RunByID(ctx context.Context, ID domain.RunID) (*domain.Run, error)
}
