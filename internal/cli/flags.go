// Package cli defines the retentionwatch cobra commands. Commands stay
// thin: they parse flags, resolve configuration, and delegate to the
// adapters and services behind wire.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/wire"
)

// addScoringFlags registers the flags shared by report and ingest.
func addScoringFlags(cmd *cobra.Command) {
	cmd.Flags().String("today", "", "Override the reference date (YYYY-MM-DD)")
	cmd.Flags().Int("due-soon-days", -1, "Days ahead to flag upcoming check-ins as due soon")
	cmd.Flags().Int("max-high-risk", -1, "Cap the high-risk roster (0 = unlimited)")
	cmd.Flags().Bool("lenient", false, "Count and skip malformed rows instead of aborting")
}

// buildReportRequest resolves flags against the loaded configuration.
// A negative flag default means "not set, use config".
func buildReportRequest(cmd *cobra.Command, path string) (primary.ReportRequest, error) {
	cfg, err := wire.Config()
	if err != nil {
		return primary.ReportRequest{}, err
	}

	req := primary.ReportRequest{
		Path:              path,
		DueSoonWindowDays: cfg.DueSoonDays,
		MaxHighRisk:       cfg.MaxHighRisk,
		Lenient:           cfg.Lenient,
	}

	if days, _ := cmd.Flags().GetInt("due-soon-days"); days >= 0 {
		req.DueSoonWindowDays = days
	}
	if maxHigh, _ := cmd.Flags().GetInt("max-high-risk"); maxHigh >= 0 {
		req.MaxHighRisk = maxHigh
	}
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		req.Lenient = true
	}

	req.ReferenceDate, err = resolveReferenceDate(cmd)
	if err != nil {
		return primary.ReportRequest{}, err
	}

	return req, nil
}

// resolveReferenceDate returns the --today override or the current
// date truncated to midnight UTC.
func resolveReferenceDate(cmd *cobra.Command) (time.Time, error) {
	today, _ := cmd.Flags().GetString("today")
	if today == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	d, err := time.Parse(models.DateFormat, today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today value %q (expected YYYY-MM-DD)", today)
	}
	return d, nil
}
