package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/retentionwatch/internal/ports/secondary"
	"github.com/example/retentionwatch/internal/roster"
)

const validCSV = `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count,risk_notes
S-001,Ada Example,Alpha,0.92,4.1,2025-03-10,3,
S-002,Grace Sample,Beta,0.55,2.2,2025-01-20,0,missed two sessions
S-003,Alan Test,,0.75,3.5,2025-03-01,1,
`

// writeCSV writes content to a temp file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test csv: %v", err)
	}
	return path
}

func TestLoader_LoadValid(t *testing.T) {
	loader := NewLoader()

	result, err := loader.Load(context.Background(), writeCSV(t, validCSV), secondary.LoadStrict)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}
	if result.SkippedRows != 0 {
		t.Errorf("expected no skipped rows, got %d", result.SkippedRows)
	}

	first := result.Records[0]
	if first.ScholarID != "S-001" || first.Name != "Ada Example" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.AttendanceRate != 0.92 || first.MilestoneCount != 3 {
		t.Errorf("unexpected numeric fields: %+v", first)
	}
	// Blank cohort survives loading untouched.
	if result.Records[2].Cohort != "" {
		t.Errorf("expected blank cohort preserved, got %q", result.Records[2].Cohort)
	}
}

func TestLoader_MissingColumnFailsBeforeRows(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,last_checkin_date,milestone_count
S-001,Ada Example,Alpha,0.92,2025-03-10,3
`

	_, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadStrict)

	var missing *roster.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missing.Columns) != 1 || missing.Columns[0] != "engagement_score" {
		t.Errorf("expected [engagement_score], got %v", missing.Columns)
	}
}

func TestLoader_StrictAbortsOnBadRow(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count
S-001,Ada Example,Alpha,0.92,4.1,2025-03-10,3
S-002,Grace Sample,Beta,abc,2.2,2025-01-20,0
`

	_, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadStrict)

	var invalid *roster.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
	if invalid.Field != "attendance_rate" || invalid.RowID != "S-002" {
		t.Errorf("expected attendance_rate/S-002, got %s/%s", invalid.Field, invalid.RowID)
	}
}

func TestLoader_LenientCountsAndSkips(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count
S-001,Ada Example,Alpha,0.92,4.1,2025-03-10,3
S-002,Grace Sample,Beta,abc,2.2,2025-01-20,0
S-003,Alan Test,Beta,0.75,3.5,not-a-date,1
S-004,Joan Case,Beta,0.81,3.9,2025-03-05,2
`

	result, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadLenient)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("expected 2 usable records, got %d", len(result.Records))
	}
	if result.SkippedRows != 2 {
		t.Errorf("expected 2 skipped rows, got %d", result.SkippedRows)
	}
	if result.Records[0].ScholarID != "S-001" || result.Records[1].ScholarID != "S-004" {
		t.Errorf("unexpected surviving records: %s, %s",
			result.Records[0].ScholarID, result.Records[1].ScholarID)
	}
}

func TestLoader_EmptyRosterIsError(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count
`

	_, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadStrict)
	if !errors.Is(err, roster.ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestLoader_AllRowsSkippedIsError(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count
S-001,Ada Example,Alpha,abc,4.1,2025-03-10,3
`

	_, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadLenient)
	if !errors.Is(err, roster.ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), secondary.LoadStrict)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoader_ShortRowReportsFieldError(t *testing.T) {
	loader := NewLoader()
	content := `scholar_id,name,cohort,attendance_rate,engagement_score,last_checkin_date,milestone_count
S-001,Ada Example,Alpha,0.92
`

	_, err := loader.Load(context.Background(), writeCSV(t, content), secondary.LoadStrict)

	var invalid *roster.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldError for short row, got %v", err)
	}
	if invalid.Field != "engagement_score" {
		t.Errorf("expected engagement_score reported first, got %s", invalid.Field)
	}
}
