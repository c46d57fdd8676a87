// Package models defines the shared domain types for retention watch:
// validated scholar records, computed risk assessments, aggregate
// summaries, and persisted run rows.
package models

import "time"

// DateFormat is the only accepted calendar date layout across the system.
const DateFormat = "2006-01-02"

// Tier is the coarse risk bucket derived from a continuous score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// DueStatus classifies how urgently a follow-up check-in is needed.
type DueStatus string

const (
	DueOverdue  DueStatus = "overdue"
	DueSoon     DueStatus = "due_soon"
	DueUpcoming DueStatus = "upcoming"
)

// Driver is a named reason code for a crossed risk threshold.
type Driver string

const (
	DriverLowAttendance  Driver = "low_attendance"
	DriverSoftAttendance Driver = "soft_attendance"
	DriverLowEngagement  Driver = "low_engagement"
	DriverSoftEngagement Driver = "soft_engagement"
	DriverStaleCheckin   Driver = "stale_checkin"
	DriverAgingCheckin   Driver = "aging_checkin"
	DriverNoMilestones   Driver = "no_milestones"
)

// UnassignedCohort is the sentinel cohort label applied at aggregation
// time when a record carries a blank cohort.
const UnassignedCohort = "Unassigned"

// ScholarRecord is one participant's validated input snapshot.
// It is immutable after construction; every derived quantity (score,
// tier, drivers, due dates) is a pure function of the record, a
// reference date, and configuration, and is never stored back on it.
type ScholarRecord struct {
	ScholarID       string
	Name            string
	Cohort          string
	AttendanceRate  float64
	EngagementScore float64
	LastCheckinDate time.Time
	MilestoneCount  int
	RiskNotes       string
}

// RiskAssessment is the full derived view of one record at a reference
// date. Computed on demand, never cached.
type RiskAssessment struct {
	Score           float64
	Tier            Tier
	Drivers         []Driver
	NextCheckinDate time.Time
	DueStatus       DueStatus
	ActionHint      string
}
