package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/retentionwatch/internal/models"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

var _ secondary.RosterSource = (*mockRosterSource)(nil)
var _ secondary.RunStore = (*mockRunStore)(nil)

// mockRosterSource implements secondary.RosterSource for testing.
type mockRosterSource struct {
	result     *secondary.RosterResult
	loadErr    error
	lastPath   string
	lastPolicy secondary.LoadPolicy
}

func (m *mockRosterSource) Load(_ context.Context, path string, policy secondary.LoadPolicy) (*secondary.RosterResult, error) {
	m.lastPath = path
	m.lastPolicy = policy
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.result, nil
}

// mockRunStore implements secondary.RunStore for testing.
type mockRunStore struct {
	nextRunID     int64
	saveErr       error
	savedRun      *models.Run
	savedSnaps    []*models.ScholarSnapshot
	runs          []*models.Run
	snapshots     []*models.ScholarSnapshot
	lastSnapRunID int64
	lastFilters   secondary.SnapshotFilters
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{nextRunID: 1}
}

func (m *mockRunStore) EnsureSchema(_ context.Context) error {
	return nil
}

func (m *mockRunStore) SaveRun(_ context.Context, run *models.Run, snapshots []*models.ScholarSnapshot) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.savedRun = run
	m.savedSnaps = snapshots
	return m.nextRunID, nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]*models.Run, error) {
	if limit > 0 && limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunStore) GetRun(_ context.Context, runID int64) (*models.Run, error) {
	for _, r := range m.runs {
		if r.RunID == runID {
			return r, nil
		}
	}
	return nil, errors.New("run not found")
}

func (m *mockRunStore) ListSnapshots(_ context.Context, runID int64, filters secondary.SnapshotFilters) ([]*models.ScholarSnapshot, error) {
	m.lastSnapRunID = runID
	m.lastFilters = filters
	return m.snapshots, nil
}

func (m *mockRunStore) Close() error {
	return nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// rosterOf wraps records in a RosterResult.
func rosterOf(skipped int, records ...*models.ScholarRecord) *secondary.RosterResult {
	return &secondary.RosterResult{Records: records, SkippedRows: skipped}
}

// scholar builds a record with the given risk posture.
func scholar(t *testing.T, id, cohort string, attendance, engagement float64, lastCheckin string, milestones int) *models.ScholarRecord {
	t.Helper()
	return &models.ScholarRecord{
		ScholarID:       id,
		Name:            "Scholar " + id,
		Cohort:          cohort,
		AttendanceRate:  attendance,
		EngagementScore: engagement,
		LastCheckinDate: mustDate(t, lastCheckin),
		MilestoneCount:  milestones,
	}
}
