package models

import "time"

// TierCounts holds per-tier record counts for one grouping.
type TierCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// DueStatusCounts holds record counts per due status.
type DueStatusCounts struct {
	Overdue  int `json:"overdue"`
	DueSoon  int `json:"due_soon"`
	Upcoming int `json:"upcoming"`
}

// DriverCount is one driver histogram entry. The histogram is ordered
// by descending count, ties by first-seen order.
type DriverCount struct {
	Driver Driver `json:"driver"`
	Count  int    `json:"count"`
}

// HighRiskEntry is one row of the ranked high-risk roster.
type HighRiskEntry struct {
	ScholarID       string  `json:"scholar_id"`
	Name            string  `json:"name"`
	Cohort          string  `json:"cohort"`
	RiskScore       float64 `json:"risk_score"`
	AttendanceRate  float64 `json:"attendance_rate"`
	EngagementScore float64 `json:"engagement_score"`
	LastCheckinDate string  `json:"last_checkin_date"`
	NextCheckinDate string  `json:"next_checkin_date"`
	DueStatus       string  `json:"due_status"`
	ActionHint      string  `json:"action_hint"`
	RiskNotes       string  `json:"risk_notes,omitempty"`
}

// Summary is the aggregate view of a record set at a fixed reference
// date. Averages are rounded to two decimals for reporting; the
// aggregation itself runs at full precision.
type Summary struct {
	ReferenceDate     string                `json:"reference_date"`
	DueSoonWindowDays int                   `json:"due_soon_window_days"`
	TotalScholars     int                   `json:"total_scholars"`
	AverageAttendance float64               `json:"average_attendance"`
	AverageEngagement float64               `json:"average_engagement"`
	RiskCounts        TierCounts            `json:"risk_counts"`
	DueStatus         DueStatusCounts       `json:"due_status"`
	ByCohort          map[string]TierCounts `json:"by_cohort"`
	DriverFrequency   []DriverCount         `json:"driver_frequency"`
	HighRisk          []HighRiskEntry       `json:"high_risk"`
	HighRiskTotal     int                   `json:"high_risk_total"`
	MaxHighRisk       int                   `json:"max_high_risk"`
	HighRiskTruncated bool                  `json:"high_risk_truncated"`
	SkippedRows       int                   `json:"skipped_rows"`
}

// Run is one immutable persisted execution of the pipeline.
type Run struct {
	RunID             int64
	RunUID            string
	RunAt             time.Time
	SourceLabel       string
	Notes             string
	TotalScholars     int
	AverageAttendance float64
	AverageEngagement float64
	RiskCounts        TierCounts
	DueStatus         DueStatusCounts
	SkippedRows       int
	DueSoonWindowDays int
	MaxHighRisk       int
	ReferenceDate     time.Time
}

// ScholarSnapshot is one persisted per-scholar row belonging to a run.
// It carries both the input fields and the computed assessment so a run
// can be replayed or audited without the source CSV.
type ScholarSnapshot struct {
	SnapshotID      int64
	RunID           int64
	ScholarID       string
	Name            string
	Cohort          string
	AttendanceRate  float64
	EngagementScore float64
	LastCheckinDate time.Time
	MilestoneCount  int
	RiskScore       float64
	Tier            Tier
	Drivers         []Driver
	NextCheckinDate time.Time
	DueStatus       DueStatus
	ActionHint      string
	RiskNotes       string
}
