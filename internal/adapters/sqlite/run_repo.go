// Package sqlite contains the SQLite implementation of the run store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/retentionwatch/internal/db"
	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

// RunRepository implements secondary.RunStore with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(database *sql.DB) *RunRepository {
	return &RunRepository{db: database}
}

// EnsureSchema applies the authoritative schema.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, db.GetSchemaSQL()); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRun persists the run header and all snapshot rows in a single
// transaction. On any failure the transaction rolls back and nothing
// of the run appears in history.
func (r *RunRepository) SaveRun(ctx context.Context, run *models.Run, snapshots []*models.ScholarSnapshot) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runUID := run.RunUID
	if runUID == "" {
		runUID = uuid.NewString()
	}
	runAt := run.RunAt
	if runAt.IsZero() {
		runAt = time.Now().UTC()
	}

	var notes sql.NullString
	if run.Notes != "" {
		notes = sql.NullString{String: run.Notes, Valid: true}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_uid, run_at, source_label, notes, reference_date,
			total_scholars, average_attendance, average_engagement,
			high, medium, low, overdue, due_soon, upcoming,
			skipped, due_soon_window_days, max_high_risk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runUID, runAt, run.SourceLabel, notes,
		run.ReferenceDate.Format(models.DateFormat),
		run.TotalScholars, run.AverageAttendance, run.AverageEngagement,
		run.RiskCounts.High, run.RiskCounts.Medium, run.RiskCounts.Low,
		run.DueStatus.Overdue, run.DueStatus.DueSoon, run.DueStatus.Upcoming,
		run.SkippedRows, run.DueSoonWindowDays, run.MaxHighRisk,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scholar_snapshots (run_id, scholar_id, name, cohort,
			attendance_rate, engagement_score, last_checkin_date, milestone_count,
			risk_score, tier, drivers, next_checkin_date, due_status, action_hint, risk_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		var riskNotes sql.NullString
		if snap.RiskNotes != "" {
			riskNotes = sql.NullString{String: snap.RiskNotes, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			runID, snap.ScholarID, snap.Name, snap.Cohort,
			snap.AttendanceRate, snap.EngagementScore,
			snap.LastCheckinDate.Format(models.DateFormat), snap.MilestoneCount,
			snap.RiskScore, string(snap.Tier), encodeDrivers(snap.Drivers),
			snap.NextCheckinDate.Format(models.DateFormat), string(snap.DueStatus),
			snap.ActionHint, riskNotes,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert snapshot for %s: %w", snap.ScholarID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

const runColumns = `run_id, run_uid, run_at, source_label, notes, reference_date,
	total_scholars, average_attendance, average_engagement,
	high, medium, low, overdue, due_soon, upcoming,
	skipped, due_soon_window_days, max_high_risk`

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY run_id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun retrieves one run header by id.
func (r *RunRepository) GetRun(ctx context.Context, runID int64) (*models.Run, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	return run, err
}

// ListSnapshots retrieves a run's snapshot rows ordered by descending
// risk score, optionally filtered by tier and cohort.
func (r *RunRepository) ListSnapshots(ctx context.Context, runID int64, filters secondary.SnapshotFilters) ([]*models.ScholarSnapshot, error) {
	query := `SELECT snapshot_id, run_id, scholar_id, name, cohort,
		attendance_rate, engagement_score, last_checkin_date, milestone_count,
		risk_score, tier, drivers, next_checkin_date, due_status, action_hint, risk_notes
		FROM scholar_snapshots WHERE run_id = ?`
	args := []any{runID}

	if filters.Tier != "" {
		query += " AND tier = ?"
		args = append(args, string(filters.Tier))
	}
	if filters.Cohort != "" {
		query += " AND cohort = ?"
		args = append(args, filters.Cohort)
	}
	query += " ORDER BY risk_score DESC, snapshot_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.ScholarSnapshot
	for rows.Next() {
		var (
			snap      models.ScholarSnapshot
			lastDate  string
			nextDate  string
			tier      string
			dueStatus string
			drivers   sql.NullString
			riskNotes sql.NullString
		)
		err := rows.Scan(&snap.SnapshotID, &snap.RunID, &snap.ScholarID, &snap.Name, &snap.Cohort,
			&snap.AttendanceRate, &snap.EngagementScore, &lastDate, &snap.MilestoneCount,
			&snap.RiskScore, &tier, &drivers, &nextDate, &dueStatus, &snap.ActionHint, &riskNotes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snap.Tier = models.Tier(tier)
		snap.DueStatus = models.DueStatus(dueStatus)
		snap.Drivers = decodeDrivers(drivers.String)
		snap.RiskNotes = riskNotes.String
		if snap.LastCheckinDate, err = time.Parse(models.DateFormat, lastDate); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}
		if snap.NextCheckinDate, err = time.Parse(models.DateFormat, nextDate); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}

		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}

// Close closes the underlying database handle.
func (r *RunRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var (
		run     models.Run
		notes   sql.NullString
		refDate string
	)
	err := row.Scan(&run.RunID, &run.RunUID, &run.RunAt, &run.SourceLabel, &notes, &refDate,
		&run.TotalScholars, &run.AverageAttendance, &run.AverageEngagement,
		&run.RiskCounts.High, &run.RiskCounts.Medium, &run.RiskCounts.Low,
		&run.DueStatus.Overdue, &run.DueStatus.DueSoon, &run.DueStatus.Upcoming,
		&run.SkippedRows, &run.DueSoonWindowDays, &run.MaxHighRisk)
	if err != nil {
		return nil, err
	}

	run.Notes = notes.String
	if run.ReferenceDate, err = time.Parse(models.DateFormat, refDate); err != nil {
		return nil, fmt.Errorf("failed to parse run reference date: %w", err)
	}
	return &run, nil
}

// Drivers are stored as a comma-joined list; none of the driver tags
// contain commas.
func encodeDrivers(drivers []models.Driver) sql.NullString {
	if len(drivers) == 0 {
		return sql.NullString{}
	}
	parts := make([]string, len(drivers))
	for i, d := range drivers {
		parts[i] = string(d)
	}
	return sql.NullString{String: strings.Join(parts, ","), Valid: true}
}

func decodeDrivers(s string) []models.Driver {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	drivers := make([]models.Driver, len(parts))
	for i, p := range parts {
		drivers[i] = models.Driver(p)
	}
	return drivers
}
