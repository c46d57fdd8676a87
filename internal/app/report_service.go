// Package app implements the primary-port services, wiring the roster
// source and the core risk/summary packages together.
package app

import (
	"context"
	"fmt"

	"github.com/example/retentionwatch/internal/core/summary"
	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	source secondary.RosterSource
}

// NewReportService creates a new ReportService with the given roster source.
func NewReportService(source secondary.RosterSource) *ReportServiceImpl {
	return &ReportServiceImpl{source: source}
}

// BuildSummary loads the roster, assesses each record at the reference
// date, and aggregates the results.
func (s *ReportServiceImpl) BuildSummary(ctx context.Context, req primary.ReportRequest) (*models.Summary, error) {
	result, err := s.source.Load(ctx, req.Path, loadPolicy(req.Lenient))
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	return summary.Summarize(result.Records, req.ReferenceDate, summary.Options{
		DueSoonWindowDays: req.DueSoonWindowDays,
		MaxHighRisk:       req.MaxHighRisk,
		SkippedRows:       result.SkippedRows,
	}), nil
}

func loadPolicy(lenient bool) secondary.LoadPolicy {
	if lenient {
		return secondary.LoadLenient
	}
	return secondary.LoadStrict
}

var _ primary.ReportService = (*ReportServiceImpl)(nil)
