package secondary

import (
	"context"

	"github.com/example/retentionwatch/internal/models"
)

// SnapshotFilters narrows snapshot lookups within one run.
type SnapshotFilters struct {
	Tier   models.Tier
	Cohort string
}

// RunStore persists and queries immutable run history. SaveRun commits
// the run header and all snapshot rows in a single transaction: a
// failed run never appears in history, partially or otherwise.
type RunStore interface {
	// EnsureSchema creates the runs and snapshots tables if absent.
	EnsureSchema(ctx context.Context) error

	// SaveRun persists one run and its snapshots atomically and
	// returns the assigned run id.
	SaveRun(ctx context.Context, run *models.Run, snapshots []*models.ScholarSnapshot) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)

	// GetRun retrieves one run header by id.
	GetRun(ctx context.Context, runID int64) (*models.Run, error)

	// ListSnapshots retrieves a run's snapshot rows, filtered by tier
	// and/or cohort, ordered by descending risk score.
	ListSnapshots(ctx context.Context, runID int64, filters SnapshotFilters) ([]*models.ScholarSnapshot, error)

	// Close releases the underlying connection.
	Close() error
}
