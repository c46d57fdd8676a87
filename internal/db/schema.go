package db

// SchemaSQL is the complete schema for a fresh retentionwatch install.
//
// This is the single source of truth for the SQLite schema. Tests build
// their in-memory databases from GetSchemaSQL() so repository code and
// tests can never drift apart: a column referenced by a repository but
// absent here fails immediately with "no such column".
//
// History is append-only. Runs are immutable once written and snapshots
// cascade with their run.
const SchemaSQL = `
-- Runs (one immutable pipeline execution)
CREATE TABLE IF NOT EXISTS runs (
	run_id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_uid TEXT NOT NULL UNIQUE,
	run_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	source_label TEXT NOT NULL,
	notes TEXT,
	reference_date TEXT NOT NULL,
	total_scholars INTEGER NOT NULL,
	average_attendance REAL NOT NULL,
	average_engagement REAL NOT NULL,
	high INTEGER NOT NULL,
	medium INTEGER NOT NULL,
	low INTEGER NOT NULL,
	overdue INTEGER NOT NULL,
	due_soon INTEGER NOT NULL,
	upcoming INTEGER NOT NULL,
	skipped INTEGER NOT NULL DEFAULT 0,
	due_soon_window_days INTEGER NOT NULL,
	max_high_risk INTEGER NOT NULL DEFAULT 0
);

-- Scholar snapshots (per-scholar rows belonging to a run)
CREATE TABLE IF NOT EXISTS scholar_snapshots (
	snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL,
	scholar_id TEXT NOT NULL,
	name TEXT NOT NULL,
	cohort TEXT NOT NULL,
	attendance_rate REAL NOT NULL,
	engagement_score REAL NOT NULL,
	last_checkin_date TEXT NOT NULL,
	milestone_count INTEGER NOT NULL,
	risk_score REAL NOT NULL,
	tier TEXT NOT NULL CHECK(tier IN ('high', 'medium', 'low')),
	drivers TEXT,
	next_checkin_date TEXT NOT NULL,
	due_status TEXT NOT NULL CHECK(due_status IN ('overdue', 'due_soon', 'upcoming')),
	action_hint TEXT NOT NULL,
	risk_notes TEXT,
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run ON scholar_snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_tier ON scholar_snapshots(tier);
CREATE INDEX IF NOT EXISTS idx_snapshots_cohort ON scholar_snapshots(cohort);
`

// GetSchemaSQL returns the authoritative schema SQL.
func GetSchemaSQL() string {
	return SchemaSQL
}
