// Package postgres implements the run store on PostgreSQL for
// deployments that keep retention history in a shared database rather
// than the default local SQLite file. Schema and semantics mirror the
// sqlite adapter; runs and snapshots commit in one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id BIGSERIAL PRIMARY KEY,
	run_uid TEXT NOT NULL UNIQUE,
	run_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	source_label TEXT NOT NULL,
	notes TEXT,
	reference_date DATE NOT NULL,
	total_scholars INT NOT NULL,
	average_attendance NUMERIC(6,2) NOT NULL,
	average_engagement NUMERIC(6,2) NOT NULL,
	high INT NOT NULL,
	medium INT NOT NULL,
	low INT NOT NULL,
	overdue INT NOT NULL,
	due_soon INT NOT NULL,
	upcoming INT NOT NULL,
	skipped INT NOT NULL DEFAULT 0,
	due_soon_window_days INT NOT NULL,
	max_high_risk INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS scholar_snapshots (
	snapshot_id BIGSERIAL PRIMARY KEY,
	run_id BIGINT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	scholar_id TEXT NOT NULL,
	name TEXT NOT NULL,
	cohort TEXT NOT NULL,
	attendance_rate NUMERIC(6,2) NOT NULL,
	engagement_score NUMERIC(6,2) NOT NULL,
	last_checkin_date DATE NOT NULL,
	milestone_count INT NOT NULL,
	risk_score NUMERIC(6,2) NOT NULL,
	tier TEXT NOT NULL CHECK(tier IN ('high', 'medium', 'low')),
	drivers TEXT,
	next_checkin_date DATE NOT NULL,
	due_status TEXT NOT NULL CHECK(due_status IN ('overdue', 'due_soon', 'upcoming')),
	action_hint TEXT NOT NULL,
	risk_notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON scholar_snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_tier ON scholar_snapshots(tier);
CREATE INDEX IF NOT EXISTS idx_snapshots_cohort ON scholar_snapshots(cohort);
`

// RunRepository implements secondary.RunStore for PostgreSQL.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository connects to the database named by the URL and
// verifies the connection.
func NewRunRepository(ctx context.Context, databaseURL string) (*RunRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse database URL: %w", err)
	}
	poolConfig.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	return &RunRepository{pool: pool}, nil
}

// EnsureSchema creates the run history tables if absent.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRun persists the run header and all snapshots in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run *models.Run, snapshots []*models.ScholarSnapshot) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	runUID := run.RunUID
	if runUID == "" {
		runUID = uuid.NewString()
	}
	runAt := run.RunAt
	if runAt.IsZero() {
		runAt = time.Now().UTC()
	}

	var notes *string
	if run.Notes != "" {
		notes = &run.Notes
	}

	var runID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO runs (run_uid, run_at, source_label, notes, reference_date,
			total_scholars, average_attendance, average_engagement,
			high, medium, low, overdue, due_soon, upcoming,
			skipped, due_soon_window_days, max_high_risk)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING run_id`,
		runUID, runAt, run.SourceLabel, notes, run.ReferenceDate,
		run.TotalScholars, run.AverageAttendance, run.AverageEngagement,
		run.RiskCounts.High, run.RiskCounts.Medium, run.RiskCounts.Low,
		run.DueStatus.Overdue, run.DueStatus.DueSoon, run.DueStatus.Upcoming,
		run.SkippedRows, run.DueSoonWindowDays, run.MaxHighRisk,
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to insert run: %w", err)
	}

	for _, snap := range snapshots {
		var riskNotes *string
		if snap.RiskNotes != "" {
			riskNotes = &snap.RiskNotes
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO scholar_snapshots (run_id, scholar_id, name, cohort,
				attendance_rate, engagement_score, last_checkin_date, milestone_count,
				risk_score, tier, drivers, next_checkin_date, due_status, action_hint, risk_notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			runID, snap.ScholarID, snap.Name, snap.Cohort,
			snap.AttendanceRate, snap.EngagementScore, snap.LastCheckinDate, snap.MilestoneCount,
			snap.RiskScore, string(snap.Tier), encodeDrivers(snap.Drivers),
			snap.NextCheckinDate, string(snap.DueStatus), snap.ActionHint, riskNotes,
		)
		if err != nil {
			return 0, fmt.Errorf("postgres: failed to insert snapshot for %s: %w", snap.ScholarID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit run: %w", err)
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
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list runs: %w", err)
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
	row := r.pool.QueryRow(ctx, "SELECT "+runColumns+" FROM runs WHERE run_id = $1", runID)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	return run, err
}

// ListSnapshots retrieves a run's snapshots ordered by descending risk
// score, optionally filtered by tier and cohort.
func (r *RunRepository) ListSnapshots(ctx context.Context, runID int64, filters secondary.SnapshotFilters) ([]*models.ScholarSnapshot, error) {
	query := `SELECT snapshot_id, run_id, scholar_id, name, cohort,
		attendance_rate, engagement_score, last_checkin_date, milestone_count,
		risk_score, tier, drivers, next_checkin_date, due_status, action_hint, risk_notes
		FROM scholar_snapshots WHERE run_id = $1`
	args := []any{runID}

	if filters.Tier != "" {
		args = append(args, string(filters.Tier))
		query += fmt.Sprintf(" AND tier = $%d", len(args))
	}
	if filters.Cohort != "" {
		args = append(args, filters.Cohort)
		query += fmt.Sprintf(" AND cohort = $%d", len(args))
	}
	query += " ORDER BY risk_score DESC, snapshot_id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.ScholarSnapshot
	for rows.Next() {
		var (
			snap      models.ScholarSnapshot
			tier      string
			dueStatus string
			drivers   *string
			riskNotes *string
		)
		err := rows.Scan(&snap.SnapshotID, &snap.RunID, &snap.ScholarID, &snap.Name, &snap.Cohort,
			&snap.AttendanceRate, &snap.EngagementScore, &snap.LastCheckinDate, &snap.MilestoneCount,
			&snap.RiskScore, &tier, &drivers, &snap.NextCheckinDate, &dueStatus,
			&snap.ActionHint, &riskNotes)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan snapshot: %w", err)
		}

		snap.Tier = models.Tier(tier)
		snap.DueStatus = models.DueStatus(dueStatus)
		if drivers != nil {
			snap.Drivers = decodeDrivers(*drivers)
		}
		if riskNotes != nil {
			snap.RiskNotes = *riskNotes
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}

// Close closes the connection pool.
func (r *RunRepository) Close() error {
	r.pool.Close()
	return nil
}

func scanRun(row pgx.Row) (*models.Run, error) {
	var (
		run   models.Run
		notes *string
	)
	err := row.Scan(&run.RunID, &run.RunUID, &run.RunAt, &run.SourceLabel, &notes, &run.ReferenceDate,
		&run.TotalScholars, &run.AverageAttendance, &run.AverageEngagement,
		&run.RiskCounts.High, &run.RiskCounts.Medium, &run.RiskCounts.Low,
		&run.DueStatus.Overdue, &run.DueStatus.DueSoon, &run.DueStatus.Upcoming,
		&run.SkippedRows, &run.DueSoonWindowDays, &run.MaxHighRisk)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		run.Notes = *notes
	}
	return &run, nil
}

func encodeDrivers(drivers []models.Driver) *string {
	if len(drivers) == 0 {
		return nil
	}
	parts := make([]string, len(drivers))
	for i, d := range drivers {
		parts[i] = string(d)
	}
	joined := strings.Join(parts, ",")
	return &joined
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
