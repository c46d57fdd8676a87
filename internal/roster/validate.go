// Package roster turns raw tabular check-in rows into validated
// ScholarRecords. Column presence is checked once against the header;
// each data row is then validated field by field with labeled errors
// that name the offending field and row.
package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/example/retentionwatch/internal/models"
)

// RequiredColumns are the header columns every roster must carry.
// risk_notes is optional.
var RequiredColumns = []string{
	"scholar_id",
	"name",
	"cohort",
	"attendance_rate",
	"engagement_score",
	"last_checkin_date",
	"milestone_count",
}

// ErrEmptyRoster is returned when a load yields zero usable records.
// Aggregating nothing is well-defined but almost always an operator
// mistake, so it is surfaced instead of silently reporting zeros.
var ErrEmptyRoster = errors.New("no usable records in roster")

// MissingColumnsError is a fatal whole-input error: the header omits
// one or more required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// InvalidFieldError labels one unparseable field on one row. RowID is
// the record's own scholar_id when present, else "row N".
type InvalidFieldError struct {
	Field string
	RowID string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s for %s: %q", e.Field, e.RowID, e.Value)
}

// CheckColumns verifies the header carries every required column.
// It reports all missing columns at once, in required-column order.
func CheckColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ValidateRow converts one raw row into a ScholarRecord. position is
// the 1-based data-row number, used only for the "row N" fallback when
// the row has no scholar_id of its own. String fields are trimmed;
// dates must match YYYY-MM-DD exactly, with no coercion.
func ValidateRow(row map[string]string, position int) (*models.ScholarRecord, error) {
	rowID := strings.TrimSpace(row["scholar_id"])
	if rowID == "" {
		rowID = fmt.Sprintf("row %d", position)
	}

	attendance, err := parseFloat(row["attendance_rate"], "attendance_rate", rowID)
	if err != nil {
		return nil, err
	}
	engagement, err := parseFloat(row["engagement_score"], "engagement_score", rowID)
	if err != nil {
		return nil, err
	}
	lastCheckin, err := parseDate(row["last_checkin_date"], "last_checkin_date", rowID)
	if err != nil {
		return nil, err
	}
	milestones, err := parseInt(row["milestone_count"], "milestone_count", rowID)
	if err != nil {
		return nil, err
	}

	return &models.ScholarRecord{
		ScholarID:       strings.TrimSpace(row["scholar_id"]),
		Name:            strings.TrimSpace(row["name"]),
		Cohort:          strings.TrimSpace(row["cohort"]),
		AttendanceRate:  attendance,
		EngagementScore: engagement,
		LastCheckinDate: lastCheckin,
		MilestoneCount:  milestones,
		RiskNotes:       strings.TrimSpace(row["risk_notes"]),
	}, nil
}

func parseFloat(value, field, rowID string) (float64, error) {
	f, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil {
		return 0, &InvalidFieldError{Field: field, RowID: rowID, Value: value}
	}
	return f, nil
}

func parseInt(value, field, rowID string) (int, error) {
	n, err := cast.ToIntE(strings.TrimSpace(value))
	if err != nil {
		return 0, &InvalidFieldError{Field: field, RowID: rowID, Value: value}
	}
	return n, nil
}

func parseDate(value, field, rowID string) (time.Time, error) {
	d, err := time.Parse(models.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &InvalidFieldError{Field: field, RowID: rowID, Value: value}
	}
	return d, nil
}
