package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/example/retentionwatch/internal/core/risk"
	"github.com/example/retentionwatch/internal/core/summary"
	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface.
type IngestServiceImpl struct {
	source secondary.RosterSource
	store  secondary.RunStore
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(source secondary.RosterSource, store secondary.RunStore) *IngestServiceImpl {
	return &IngestServiceImpl{source: source, store: store}
}

// Ingest loads and assesses a roster, then persists the run header and
// all per-scholar snapshots in one transaction.
func (s *IngestServiceImpl) Ingest(ctx context.Context, req primary.IngestRequest) (*primary.IngestResponse, error) {
	result, err := s.source.Load(ctx, req.Path, loadPolicy(req.Lenient))
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	sum := summary.Summarize(result.Records, req.ReferenceDate, summary.Options{
		DueSoonWindowDays: req.DueSoonWindowDays,
		MaxHighRisk:       req.MaxHighRisk,
		SkippedRows:       result.SkippedRows,
	})

	sourceLabel := req.SourceLabel
	if sourceLabel == "" {
		sourceLabel = filepath.Base(req.Path)
	}

	run := &models.Run{
		RunUID:            uuid.NewString(),
		RunAt:             time.Now().UTC(),
		SourceLabel:       sourceLabel,
		Notes:             req.Notes,
		ReferenceDate:     req.ReferenceDate,
		TotalScholars:     sum.TotalScholars,
		AverageAttendance: sum.AverageAttendance,
		AverageEngagement: sum.AverageEngagement,
		RiskCounts:        sum.RiskCounts,
		DueStatus:         sum.DueStatus,
		SkippedRows:       sum.SkippedRows,
		DueSoonWindowDays: req.DueSoonWindowDays,
		MaxHighRisk:       req.MaxHighRisk,
	}

	snapshots := make([]*models.ScholarSnapshot, 0, len(result.Records))
	for _, rec := range result.Records {
		a := risk.Assess(rec, req.ReferenceDate, req.DueSoonWindowDays)
		cohort := rec.Cohort
		if cohort == "" {
			cohort = models.UnassignedCohort
		}
		snapshots = append(snapshots, &models.ScholarSnapshot{
			ScholarID:       rec.ScholarID,
			Name:            rec.Name,
			Cohort:          cohort,
			AttendanceRate:  rec.AttendanceRate,
			EngagementScore: rec.EngagementScore,
			LastCheckinDate: rec.LastCheckinDate,
			MilestoneCount:  rec.MilestoneCount,
			RiskScore:       a.Score,
			Tier:            a.Tier,
			Drivers:         a.Drivers,
			NextCheckinDate: a.NextCheckinDate,
			DueStatus:       a.DueStatus,
			ActionHint:      a.ActionHint,
			RiskNotes:       rec.RiskNotes,
		})
	}

	runID, err := s.store.SaveRun(ctx, run, snapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	return &primary.IngestResponse{
		RunID:  runID,
		RunUID: run.RunUID,
		Total:  sum.TotalScholars,
	}, nil
}

var _ primary.IngestService = (*IngestServiceImpl)(nil)
