// Package summary aggregates assessed scholar records into the
// program-level Summary: totals, averages, tier and due-status counts,
// cohort breakdown, driver histogram, and the ranked high-risk roster.
//
// Aggregation is a single in-memory reduce over pure per-record
// assessments. Ranking and truncation run once over the fully merged
// high-risk set so the global ordering is always correct.
package summary

import (
	"math"
	"sort"
	"time"

	"github.com/example/retentionwatch/internal/core/risk"
	"github.com/example/retentionwatch/internal/models"
)

// Options configures one aggregation pass.
type Options struct {
	// DueSoonWindowDays is how many days ahead of the next check-in a
	// scholar is flagged as due soon.
	DueSoonWindowDays int

	// MaxHighRisk caps the high-risk roster. Zero means unlimited.
	MaxHighRisk int

	// SkippedRows is the lenient-load skip count, carried through to
	// the Summary for reporting. The aggregator never skips on its own.
	SkippedRows int
}

type rankedEntry struct {
	record     *models.ScholarRecord
	assessment models.RiskAssessment
}

// Summarize aggregates a record set at a fixed reference date. An empty
// set yields zero counts and 0.0 averages, never NaN.
func Summarize(records []*models.ScholarRecord, referenceDate time.Time, opts Options) *models.Summary {
	s := &models.Summary{
		ReferenceDate:     referenceDate.Format(models.DateFormat),
		DueSoonWindowDays: opts.DueSoonWindowDays,
		TotalScholars:     len(records),
		ByCohort:          make(map[string]models.TierCounts),
		DriverFrequency:   []models.DriverCount{},
		HighRisk:          []models.HighRiskEntry{},
		MaxHighRisk:       opts.MaxHighRisk,
		SkippedRows:       opts.SkippedRows,
	}

	var attendanceSum, engagementSum float64
	driverCounts := make(map[models.Driver]int)
	var driverOrder []models.Driver
	var highRisk []rankedEntry

	for _, rec := range records {
		a := risk.Assess(rec, referenceDate, opts.DueSoonWindowDays)

		attendanceSum += rec.AttendanceRate
		engagementSum += rec.EngagementScore

		cohort := rec.Cohort
		if cohort == "" {
			cohort = models.UnassignedCohort
		}
		counts := s.ByCohort[cohort]

		switch a.Tier {
		case models.TierHigh:
			s.RiskCounts.High++
			counts.High++
			highRisk = append(highRisk, rankedEntry{record: rec, assessment: a})
		case models.TierMedium:
			s.RiskCounts.Medium++
			counts.Medium++
		case models.TierLow:
			s.RiskCounts.Low++
			counts.Low++
		}
		s.ByCohort[cohort] = counts

		switch a.DueStatus {
		case models.DueOverdue:
			s.DueStatus.Overdue++
		case models.DueSoon:
			s.DueStatus.DueSoon++
		case models.DueUpcoming:
			s.DueStatus.Upcoming++
		}

		for _, d := range a.Drivers {
			if driverCounts[d] == 0 {
				driverOrder = append(driverOrder, d)
			}
			driverCounts[d]++
		}
	}

	if len(records) > 0 {
		s.AverageAttendance = round2(attendanceSum / float64(len(records)))
		s.AverageEngagement = round2(engagementSum / float64(len(records)))
	}

	s.DriverFrequency = orderedHistogram(driverCounts, driverOrder)
	s.HighRisk, s.HighRiskTotal, s.HighRiskTruncated = rankHighRisk(highRisk, opts.MaxHighRisk)

	return s
}

// orderedHistogram sorts the driver counts by descending count, ties by
// first-seen order, which keeps the output deterministic for any given
// input ordering.
func orderedHistogram(counts map[models.Driver]int, firstSeen []models.Driver) []models.DriverCount {
	out := make([]models.DriverCount, 0, len(firstSeen))
	for _, d := range firstSeen {
		out = append(out, models.DriverCount{Driver: d, Count: counts[d]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// rankHighRisk sorts high-tier entries by descending score (stable on
// ties) and applies the roster cap. The reported total is always the
// pre-truncation count.
func rankHighRisk(entries []rankedEntry, maxHighRisk int) ([]models.HighRiskEntry, int, bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].assessment.Score > entries[j].assessment.Score
	})

	total := len(entries)
	truncated := false
	if maxHighRisk > 0 && total > maxHighRisk {
		entries = entries[:maxHighRisk]
		truncated = true
	}

	roster := make([]models.HighRiskEntry, 0, len(entries))
	for _, e := range entries {
		roster = append(roster, models.HighRiskEntry{
			ScholarID:       e.record.ScholarID,
			Name:            e.record.Name,
			Cohort:          e.record.Cohort,
			RiskScore:       round2(e.assessment.Score),
			AttendanceRate:  e.record.AttendanceRate,
			EngagementScore: e.record.EngagementScore,
			LastCheckinDate: e.record.LastCheckinDate.Format(models.DateFormat),
			NextCheckinDate: e.assessment.NextCheckinDate.Format(models.DateFormat),
			DueStatus:       string(e.assessment.DueStatus),
			ActionHint:      e.assessment.ActionHint,
			RiskNotes:       e.record.RiskNotes,
		})
	}
	return roster, total, truncated
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
