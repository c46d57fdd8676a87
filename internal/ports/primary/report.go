// Package primary defines the primary ports: the service interfaces
// the CLI layer drives, with their request and response shapes.
package primary

import (
	"context"
	"time"

	"github.com/example/retentionwatch/internal/models"
)

// ReportRequest describes one summary computation over a roster file.
type ReportRequest struct {
	// Path is the roster CSV to load.
	Path string

	// ReferenceDate fixes "today" for scoring and due-status checks.
	ReferenceDate time.Time

	// DueSoonWindowDays flags check-ins this many days out as due soon.
	DueSoonWindowDays int

	// MaxHighRisk caps the high-risk roster; zero means unlimited.
	MaxHighRisk int

	// Lenient counts and skips malformed rows instead of aborting.
	Lenient bool
}

// ReportService builds summaries from roster files.
type ReportService interface {
	// BuildSummary loads, assesses, and aggregates one roster.
	BuildSummary(ctx context.Context, req ReportRequest) (*models.Summary, error)
}
