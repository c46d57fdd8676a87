package risk

import (
	"reflect"
	"testing"
	"time"

	"github.com/example/retentionwatch/internal/models"
)

// mustDate parses a YYYY-MM-DD date or fails the test.
func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// testRecord builds a healthy baseline record that scores 0.0.
func testRecord(t *testing.T, lastCheckin string) *models.ScholarRecord {
	t.Helper()
	return &models.ScholarRecord{
		ScholarID:       "S-001",
		Name:            "Test Scholar",
		Cohort:          "Alpha",
		AttendanceRate:  0.95,
		EngagementScore: 4.5,
		LastCheckinDate: mustDate(t, lastCheckin),
		MilestoneCount:  2,
	}
}

func TestScore_HealthyRecordIsZero(t *testing.T) {
	ref := mustDate(t, "2025-03-15")
	rec := testRecord(t, "2025-03-10")

	if got := Score(rec, ref); got != 0.0 {
		t.Errorf("expected score 0.0, got %v", got)
	}
	if drivers := Drivers(rec, ref); len(drivers) != 0 {
		t.Errorf("expected no drivers, got %v", drivers)
	}
}

func TestScore_SignalBuckets(t *testing.T) {
	ref := mustDate(t, "2025-03-15")

	tests := []struct {
		name    string
		mutate  func(*models.ScholarRecord)
		score   float64
		drivers []models.Driver
	}{
		{
			name:    "low attendance",
			mutate:  func(r *models.ScholarRecord) { r.AttendanceRate = 0.60 },
			score:   3.0,
			drivers: []models.Driver{models.DriverLowAttendance},
		},
		{
			name:    "soft attendance",
			mutate:  func(r *models.ScholarRecord) { r.AttendanceRate = 0.80 },
			score:   1.5,
			drivers: []models.Driver{models.DriverSoftAttendance},
		},
		{
			name:    "attendance boundary 0.70 is soft not low",
			mutate:  func(r *models.ScholarRecord) { r.AttendanceRate = 0.70 },
			score:   1.5,
			drivers: []models.Driver{models.DriverSoftAttendance},
		},
		{
			name:    "attendance boundary 0.85 is clean",
			mutate:  func(r *models.ScholarRecord) { r.AttendanceRate = 0.85 },
			score:   0.0,
			drivers: nil,
		},
		{
			name:    "low engagement",
			mutate:  func(r *models.ScholarRecord) { r.EngagementScore = 2.5 },
			score:   3.0,
			drivers: []models.Driver{models.DriverLowEngagement},
		},
		{
			name:    "soft engagement",
			mutate:  func(r *models.ScholarRecord) { r.EngagementScore = 3.5 },
			score:   1.5,
			drivers: []models.Driver{models.DriverSoftEngagement},
		},
		{
			name:    "stale checkin at 31 days",
			mutate:  func(r *models.ScholarRecord) { r.LastCheckinDate = mustDate(t, "2025-02-12") },
			score:   2.0,
			drivers: []models.Driver{models.DriverStaleCheckin},
		},
		{
			name:    "aging checkin at exactly 30 days",
			mutate:  func(r *models.ScholarRecord) { r.LastCheckinDate = mustDate(t, "2025-02-13") },
			score:   1.0,
			drivers: []models.Driver{models.DriverAgingCheckin},
		},
		{
			name:    "14 days is not aging",
			mutate:  func(r *models.ScholarRecord) { r.LastCheckinDate = mustDate(t, "2025-03-01") },
			score:   0.0,
			drivers: nil,
		},
		{
			name:    "no milestones",
			mutate:  func(r *models.ScholarRecord) { r.MilestoneCount = 0 },
			score:   1.0,
			drivers: []models.Driver{models.DriverNoMilestones},
		},
		{
			name:    "negative milestones accepted",
			mutate:  func(r *models.ScholarRecord) { r.MilestoneCount = -3 },
			score:   1.0,
			drivers: []models.Driver{models.DriverNoMilestones},
		},
		{
			name:    "out-of-range attendance flows through",
			mutate:  func(r *models.ScholarRecord) { r.AttendanceRate = -0.2 },
			score:   3.0,
			drivers: []models.Driver{models.DriverLowAttendance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord(t, "2025-03-10")
			tt.mutate(rec)

			if got := Score(rec, ref); got != tt.score {
				t.Errorf("expected score %v, got %v", tt.score, got)
			}
			if got := Drivers(rec, ref); !reflect.DeepEqual(got, tt.drivers) {
				t.Errorf("expected drivers %v, got %v", tt.drivers, got)
			}
		})
	}
}

// TestAssess_WorstCaseExample exercises the fully-loaded record: poor
// attendance and engagement, a 30-day-old check-in, and no milestones.
func TestAssess_WorstCaseExample(t *testing.T) {
	ref := mustDate(t, "2025-03-15")
	rec := &models.ScholarRecord{
		ScholarID:       "S-042",
		AttendanceRate:  0.60,
		EngagementScore: 2.5,
		LastCheckinDate: mustDate(t, "2025-02-13"), // 30 days before ref
		MilestoneCount:  0,
	}

	a := Assess(rec, ref, 7)

	if a.Score != 8.0 {
		t.Errorf("expected score 8.0, got %v", a.Score)
	}
	if a.Tier != models.TierHigh {
		t.Errorf("expected tier high, got %s", a.Tier)
	}
	want := []models.Driver{
		models.DriverLowAttendance,
		models.DriverLowEngagement,
		models.DriverAgingCheckin, // 30 days is >14 but not >30
		models.DriverNoMilestones,
	}
	if !reflect.DeepEqual(a.Drivers, want) {
		t.Errorf("expected drivers %v, got %v", want, a.Drivers)
	}
	if got := a.NextCheckinDate.Format(models.DateFormat); got != "2025-02-20" {
		t.Errorf("expected next check-in 2025-02-20, got %s", got)
	}
	if a.DueStatus != models.DueOverdue {
		t.Errorf("expected overdue, got %s", a.DueStatus)
	}
	if a.ActionHint != "attendance support" {
		t.Errorf("expected action hint 'attendance support', got %q", a.ActionHint)
	}
}

func TestAssess_IsDeterministic(t *testing.T) {
	ref := mustDate(t, "2025-03-15")
	rec := testRecord(t, "2025-02-01")
	rec.AttendanceRate = 0.72
	rec.EngagementScore = 3.1

	first := Assess(rec, ref, 7)
	second := Assess(rec, ref, 7)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("assessments differ for identical input:\n%+v\n%+v", first, second)
	}
}

func TestTierForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Tier
	}{
		{0.0, models.TierLow},
		{3.4, models.TierLow},
		{3.5, models.TierMedium}, // inclusive lower edge
		{5.9, models.TierMedium},
		{6.0, models.TierHigh}, // inclusive lower edge
		{9.0, models.TierHigh},
	}

	for _, tt := range tests {
		if got := TierForScore(tt.score); got != tt.want {
			t.Errorf("TierForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNextCheckinDate_IntervalsByTier(t *testing.T) {
	rec := testRecord(t, "2025-03-01")

	tests := []struct {
		tier models.Tier
		want string
	}{
		{models.TierHigh, "2025-03-08"},
		{models.TierMedium, "2025-03-15"},
		{models.TierLow, "2025-03-31"},
	}

	for _, tt := range tests {
		got := NextCheckinDate(rec, tt.tier)
		if got.Format(models.DateFormat) != tt.want {
			t.Errorf("NextCheckinDate(%s) = %s, want %s", tt.tier, got.Format(models.DateFormat), tt.want)
		}
		if got.Before(rec.LastCheckinDate) {
			t.Errorf("next check-in %s is before last check-in", got.Format(models.DateFormat))
		}
	}
}

func TestDueStatusFor(t *testing.T) {
	next := mustDate(t, "2025-03-20")

	tests := []struct {
		name   string
		ref    string
		window int
		want   models.DueStatus
	}{
		{"well before window", "2025-03-01", 7, models.DueUpcoming},
		{"window edge is inclusive", "2025-03-13", 7, models.DueSoon},
		{"inside window", "2025-03-18", 7, models.DueSoon},
		{"on the due date", "2025-03-20", 7, models.DueSoon},
		{"day after due date", "2025-03-21", 7, models.DueOverdue},
		{"zero window still due on the day", "2025-03-20", 0, models.DueSoon},
		{"zero window day before is upcoming", "2025-03-19", 0, models.DueUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueStatusFor(mustDate(t, tt.ref), next, tt.window)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestActionHint_Priorities(t *testing.T) {
	tests := []struct {
		name    string
		tier    models.Tier
		drivers []models.Driver
		want    string
	}{
		{
			name:    "stale checkin outranks everything",
			tier:    models.TierHigh,
			drivers: []models.Driver{models.DriverLowAttendance, models.DriverStaleCheckin},
			want:    "re-engage outreach",
		},
		{
			name:    "attendance before engagement",
			tier:    models.TierMedium,
			drivers: []models.Driver{models.DriverLowAttendance, models.DriverLowEngagement},
			want:    "attendance support",
		},
		{
			name:    "milestones alone",
			tier:    models.TierLow,
			drivers: []models.Driver{models.DriverNoMilestones},
			want:    "milestone planning",
		},
		{
			name:    "soft drivers only on high tier",
			tier:    models.TierHigh,
			drivers: []models.Driver{models.DriverSoftAttendance, models.DriverSoftEngagement},
			want:    "priority check-in",
		},
		{
			name:    "clean low tier",
			tier:    models.TierLow,
			drivers: nil,
			want:    "lightweight check-in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActionHint(tt.tier, tt.drivers); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
