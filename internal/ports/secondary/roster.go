// Package secondary defines the secondary ports (driven adapters):
// the interfaces through which the application reaches data files and
// the run history store.
package secondary

import (
	"context"

	"github.com/example/retentionwatch/internal/models"
)

// LoadPolicy selects how a roster source treats malformed rows.
type LoadPolicy int

const (
	// LoadStrict aborts the whole load on the first malformed row.
	LoadStrict LoadPolicy = iota

	// LoadLenient counts and skips malformed rows and keeps going.
	LoadLenient
)

// RosterResult is one completed roster load.
type RosterResult struct {
	Records []*models.ScholarRecord

	// SkippedRows is the number of malformed rows dropped under
	// LoadLenient. Always zero under LoadStrict.
	SkippedRows int
}

// RosterSource yields validated scholar records from a data file.
// A load that produces zero usable records fails with
// roster.ErrEmptyRoster rather than returning an empty result.
type RosterSource interface {
	Load(ctx context.Context, path string, policy LoadPolicy) (*RosterResult, error)
}
