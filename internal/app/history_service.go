package app

import (
	"context"
	"fmt"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	store secondary.RunStore
}

// NewHistoryService creates a new HistoryService over the given store.
func NewHistoryService(store secondary.RunStore) *HistoryServiceImpl {
	return &HistoryServiceImpl{store: store}
}

// ListRuns returns the most recent runs, newest first.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves one run header.
func (s *HistoryServiceImpl) GetRun(ctx context.Context, runID int64) (*models.Run, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListSnapshots retrieves a run's snapshots with optional filters.
func (s *HistoryServiceImpl) ListSnapshots(ctx context.Context, q primary.SnapshotQuery) ([]*models.ScholarSnapshot, error) {
	snapshots, err := s.store.ListSnapshots(ctx, q.RunID, secondary.SnapshotFilters{
		Tier:   q.Tier,
		Cohort: q.Cohort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
