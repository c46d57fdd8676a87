package primary

import (
	"context"

	"github.com/example/retentionwatch/internal/models"
)

// SnapshotQuery narrows the snapshot listing for one run.
type SnapshotQuery struct {
	RunID  int64
	Tier   models.Tier
	Cohort string
}

// HistoryService reads persisted run history.
type HistoryService interface {
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)

	// GetRun retrieves one run header.
	GetRun(ctx context.Context, runID int64) (*models.Run, error)

	// ListSnapshots retrieves a run's snapshots, optionally filtered
	// by tier and cohort, ordered by descending risk score.
	ListSnapshots(ctx context.Context, q SnapshotQuery) ([]*models.ScholarSnapshot, error)
}
