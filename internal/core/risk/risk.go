// Package risk implements the attrition-risk model: pure functions from
// a validated scholar record and a reference date to a score, tier,
// risk drivers, next check-in date, and due status.
//
// Every function here is total over any ScholarRecord, including
// out-of-range or negative inputs. Input-shape validation belongs to
// the roster package; the model never errors and never mutates the
// record, so identical inputs always produce bit-identical output.
package risk

import (
	"time"

	"github.com/example/retentionwatch/internal/models"
)

// Tier boundaries, inclusive at the lower edge.
const (
	HighTierThreshold   = 6.0
	MediumTierThreshold = 3.5
)

// Check-in intervals per tier, in days from the last check-in date.
const (
	HighTierIntervalDays   = 7
	MediumTierIntervalDays = 14
	LowTierIntervalDays    = 30
)

// Score computes the weighted bucket score for a record. Signals are
// evaluated in a fixed order (attendance, engagement, check-in recency,
// milestones); within each signal the thresholds are mutually exclusive
// and the first applicable one wins.
func Score(rec *models.ScholarRecord, referenceDate time.Time) float64 {
	score, _ := scoreWithDrivers(rec, referenceDate)
	return score
}

// Drivers returns the reason codes for each crossed threshold, in
// evaluation order. Empty when no threshold is crossed.
func Drivers(rec *models.ScholarRecord, referenceDate time.Time) []models.Driver {
	_, drivers := scoreWithDrivers(rec, referenceDate)
	return drivers
}

func scoreWithDrivers(rec *models.ScholarRecord, referenceDate time.Time) (float64, []models.Driver) {
	score := 0.0
	var drivers []models.Driver

	switch {
	case rec.AttendanceRate < 0.70:
		score += 3.0
		drivers = append(drivers, models.DriverLowAttendance)
	case rec.AttendanceRate < 0.85:
		score += 1.5
		drivers = append(drivers, models.DriverSoftAttendance)
	}

	switch {
	case rec.EngagementScore < 3.0:
		score += 3.0
		drivers = append(drivers, models.DriverLowEngagement)
	case rec.EngagementScore < 4.0:
		score += 1.5
		drivers = append(drivers, models.DriverSoftEngagement)
	}

	switch days := DaysSinceCheckin(rec, referenceDate); {
	case days > 30:
		score += 2.0
		drivers = append(drivers, models.DriverStaleCheckin)
	case days > 14:
		score += 1.0
		drivers = append(drivers, models.DriverAgingCheckin)
	}

	if rec.MilestoneCount < 1 {
		score += 1.0
		drivers = append(drivers, models.DriverNoMilestones)
	}

	return score, drivers
}

// DaysSinceCheckin returns whole days between the record's last
// check-in date and the reference date. Negative when the check-in date
// is in the future; the model accepts that without complaint.
func DaysSinceCheckin(rec *models.ScholarRecord, referenceDate time.Time) int {
	return int(referenceDate.Sub(rec.LastCheckinDate).Hours() / 24)
}

// TierForScore maps a score to its risk tier. Boundaries are inclusive
// at the lower edge: exactly 6.0 is high, exactly 3.5 is medium.
func TierForScore(score float64) models.Tier {
	if score >= HighTierThreshold {
		return models.TierHigh
	}
	if score >= MediumTierThreshold {
		return models.TierMedium
	}
	return models.TierLow
}

// NextCheckinDate schedules the recommended follow-up. The interval is
// anchored on the last check-in date, not the reference date, so an
// already-late scholar comes out overdue rather than rescheduled.
func NextCheckinDate(rec *models.ScholarRecord, tier models.Tier) time.Time {
	days := LowTierIntervalDays
	switch tier {
	case models.TierHigh:
		days = HighTierIntervalDays
	case models.TierMedium:
		days = MediumTierIntervalDays
	}
	return rec.LastCheckinDate.AddDate(0, 0, days)
}

// DueStatusFor classifies follow-up urgency against the reference date.
// The due-soon comparison is inclusive: a check-in exactly
// dueSoonWindowDays out already counts as due soon.
func DueStatusFor(referenceDate, nextCheckin time.Time, dueSoonWindowDays int) models.DueStatus {
	if referenceDate.After(nextCheckin) {
		return models.DueOverdue
	}
	if !referenceDate.Before(nextCheckin.AddDate(0, 0, -dueSoonWindowDays)) {
		return models.DueSoon
	}
	return models.DueUpcoming
}

// actionHintRules in priority order: the most urgent signal present
// wins regardless of driver evaluation order.
var actionHintRules = []struct {
	driver models.Driver
	hint   string
}{
	{models.DriverStaleCheckin, "re-engage outreach"},
	{models.DriverLowAttendance, "attendance support"},
	{models.DriverLowEngagement, "engagement nudge"},
	{models.DriverNoMilestones, "milestone planning"},
}

// ActionHint suggests the follow-up action for an assessed record. A
// high-tier scholar with no single dominant driver still gets a
// priority check-in.
func ActionHint(tier models.Tier, drivers []models.Driver) string {
	present := make(map[models.Driver]bool, len(drivers))
	for _, d := range drivers {
		present[d] = true
	}
	for _, rule := range actionHintRules {
		if present[rule.driver] {
			return rule.hint
		}
	}
	if tier == models.TierHigh {
		return "priority check-in"
	}
	return "lightweight check-in"
}

// Assess computes the full derived view of one record at a reference
// date. It is the single entry point the aggregator and the ingest path
// use; the individual functions above exist for focused testing.
func Assess(rec *models.ScholarRecord, referenceDate time.Time, dueSoonWindowDays int) models.RiskAssessment {
	score, drivers := scoreWithDrivers(rec, referenceDate)
	tier := TierForScore(score)
	next := NextCheckinDate(rec, tier)

	return models.RiskAssessment{
		Score:           score,
		Tier:            tier,
		Drivers:         drivers,
		NextCheckinDate: next,
		DueStatus:       DueStatusFor(referenceDate, next, dueSoonWindowDays),
		ActionHint:      ActionHint(tier, drivers),
	}
}
