package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/retentionwatch/internal/ports/primary"
)

// HistoryAdapter renders run history listings.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter writing to out.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// ListRuns prints the most recent runs, newest first.
func (a *HistoryAdapter) ListRuns(ctx context.Context, limit int) error {
	runs, err := a.service.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-12s %-20s %-7s %-22s %s\n",
		"RUN", "DATE", "SOURCE", "TOTAL", "RISK (H/M/L)", "SKIPPED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Fprintf(a.out, "%-6d %-12s %-20s %-7d %-22s %d\n",
			run.RunID,
			run.ReferenceDate.Format("2006-01-02"),
			run.SourceLabel,
			run.TotalScholars,
			fmt.Sprintf("%d/%d/%d", run.RiskCounts.High, run.RiskCounts.Medium, run.RiskCounts.Low),
			run.SkippedRows)
	}
	fmt.Fprintln(a.out)

	return nil
}

// ShowRun prints one run header and its snapshots under the query's
// tier/cohort filters.
func (a *HistoryAdapter) ShowRun(ctx context.Context, q primary.SnapshotQuery) error {
	run, err := a.service.GetRun(ctx, q.RunID)
	if err != nil {
		return err
	}

	headerColor.Fprintf(a.out, "Run %d (%s)\n", run.RunID, run.RunUID)
	fmt.Fprintf(a.out, "Recorded: %s\n", run.RunAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "Source:   %s\n", run.SourceLabel)
	if run.Notes != "" {
		fmt.Fprintf(a.out, "Notes:    %s\n", run.Notes)
	}
	fmt.Fprintf(a.out, "Date:     %s\n", run.ReferenceDate.Format("2006-01-02"))
	fmt.Fprintf(a.out, "Scholars: %d (high %d, medium %d, low %d, skipped %d)\n",
		run.TotalScholars, run.RiskCounts.High, run.RiskCounts.Medium,
		run.RiskCounts.Low, run.SkippedRows)

	snapshots, err := a.service.ListSnapshots(ctx, q)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(a.out, "\nNo matching snapshots")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-12s %-7s %-8s %-10s %s\n",
		"ID", "NAME", "COHORT", "SCORE", "TIER", "STATUS", "ACTION")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, s := range snapshots {
		fmt.Fprintf(a.out, "%-10s %-20s %-12s %-7.2f %-8s %-10s %s\n",
			s.ScholarID, s.Name, s.Cohort, s.RiskScore, s.Tier, s.DueStatus, s.ActionHint)
	}
	fmt.Fprintln(a.out)

	return nil
}
