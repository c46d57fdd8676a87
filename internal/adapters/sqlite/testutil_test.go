// Package sqlite_test contains integration tests for the SQLite run
// store. All test databases are built from db.GetSchemaSQL() so tests
// can never drift from the authoritative schema.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/retentionwatch/internal/db"
	"github.com/example/retentionwatch/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// testRun builds a minimal run header for persistence tests.
func testRun(t *testing.T, sourceLabel string) *models.Run {
	t.Helper()
	return &models.Run{
		SourceLabel:       sourceLabel,
		ReferenceDate:     mustDate(t, "2025-03-15"),
		TotalScholars:     2,
		AverageAttendance: 0.78,
		AverageEngagement: 3.5,
		RiskCounts:        models.TierCounts{High: 1, Low: 1},
		DueStatus:         models.DueStatusCounts{Overdue: 1, Upcoming: 1},
		DueSoonWindowDays: 7,
	}
}

// testSnapshot builds one snapshot row for the given scholar.
func testSnapshot(t *testing.T, scholarID, cohort string, tier models.Tier, score float64) *models.ScholarSnapshot {
	t.Helper()
	return &models.ScholarSnapshot{
		ScholarID:       scholarID,
		Name:            "Scholar " + scholarID,
		Cohort:          cohort,
		AttendanceRate:  0.75,
		EngagementScore: 3.2,
		LastCheckinDate: mustDate(t, "2025-02-20"),
		MilestoneCount:  1,
		RiskScore:       score,
		Tier:            tier,
		Drivers:         []models.Driver{models.DriverSoftAttendance, models.DriverSoftEngagement},
		NextCheckinDate: mustDate(t, "2025-03-06"),
		DueStatus:       models.DueOverdue,
		ActionHint:      "priority check-in",
	}
}
