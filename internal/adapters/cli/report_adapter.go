// Package cli provides thin output adapters that translate service
// results into console or JSON form. Adapters hold no business logic;
// they format what the services computed.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
	headerColor = color.New(color.Bold)
)

// ReportAdapter renders summaries for the report command.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter writing to out.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// RenderText builds the summary and writes the console report.
func (a *ReportAdapter) RenderText(ctx context.Context, req primary.ReportRequest) error {
	sum, err := a.service.BuildSummary(ctx, req)
	if err != nil {
		return err
	}
	WriteSummaryText(a.out, sum)
	return nil
}

// RenderJSON builds the summary and writes it as indented JSON.
func (a *ReportAdapter) RenderJSON(ctx context.Context, req primary.ReportRequest) error {
	sum, err := a.service.BuildSummary(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// WriteSummaryText renders a computed summary as the console report.
func WriteSummaryText(out io.Writer, sum *models.Summary) {
	headerColor.Fprintln(out, "Scholar Retention Watch")
	fmt.Fprintf(out, "Date: %s\n\n", sum.ReferenceDate)

	fmt.Fprintf(out, "Total scholars: %d\n", sum.TotalScholars)
	if sum.SkippedRows > 0 {
		fmt.Fprintf(out, "Skipped rows: %d\n", sum.SkippedRows)
	}
	fmt.Fprintf(out, "Average attendance rate: %.2f\n", sum.AverageAttendance)
	fmt.Fprintf(out, "Average engagement score: %.2f\n", sum.AverageEngagement)
	fmt.Fprintf(out, "Risk mix: %s %d, %s %d, %s %d\n",
		highColor.Sprint("high"), sum.RiskCounts.High,
		mediumColor.Sprint("medium"), sum.RiskCounts.Medium,
		lowColor.Sprint("low"), sum.RiskCounts.Low)
	fmt.Fprintf(out, "Check-in status (due soon window %dd): overdue %d, due_soon %d, upcoming %d\n",
		sum.DueSoonWindowDays, sum.DueStatus.Overdue, sum.DueStatus.DueSoon, sum.DueStatus.Upcoming)

	fmt.Fprintln(out, "\nCohort risk distribution:")
	for _, cohort := range sortedCohorts(sum.ByCohort) {
		counts := sum.ByCohort[cohort]
		fmt.Fprintf(out, "- %s: high %d, medium %d, low %d\n",
			cohort, counts.High, counts.Medium, counts.Low)
	}

	if len(sum.DriverFrequency) > 0 {
		fmt.Fprintln(out, "\nRisk drivers:")
		for _, dc := range sum.DriverFrequency {
			fmt.Fprintf(out, "- %s: %d\n", dc.Driver, dc.Count)
		}
	}

	fmt.Fprintln(out, "\nHigh risk roster:")
	if len(sum.HighRisk) == 0 {
		fmt.Fprintln(out, "- None")
	} else {
		for _, entry := range sum.HighRisk {
			notes := ""
			if entry.RiskNotes != "" {
				notes = " | Notes: " + entry.RiskNotes
			}
			fmt.Fprintf(out, "- %s (%s) [%s] score %.2f attendance %.2f engagement %.2f last check-in %s next %s status %s action %s%s\n",
				entry.Name, entry.ScholarID, entry.Cohort, entry.RiskScore,
				entry.AttendanceRate, entry.EngagementScore,
				entry.LastCheckinDate, entry.NextCheckinDate,
				entry.DueStatus, entry.ActionHint, notes)
		}
	}

	if sum.HighRiskTruncated {
		fmt.Fprintf(out, "(showing top %d of %d high-risk scholars)\n",
			sum.MaxHighRisk, sum.HighRiskTotal)
	}
}

func sortedCohorts(byCohort map[string]models.TierCounts) []string {
	cohorts := make([]string, 0, len(byCohort))
	for cohort := range byCohort {
		cohorts = append(cohorts, cohort)
	}
	sort.Strings(cohorts)
	return cohorts
}
