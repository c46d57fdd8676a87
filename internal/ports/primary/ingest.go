package primary

import "context"

// IngestRequest describes one persisted run: a report computation plus
// the labeling stored with it.
type IngestRequest struct {
	ReportRequest

	// SourceLabel names the data source in run history; when empty the
	// service uses the CSV file's base name.
	SourceLabel string

	// Notes is free-text context stored on the run header.
	Notes string
}

// IngestResponse identifies the newly persisted run.
type IngestResponse struct {
	RunID  int64
	RunUID string
	Total  int
}

// IngestService computes a run and persists it to history.
type IngestService interface {
	// Ingest loads and assesses a roster, then writes the run header
	// and all per-scholar snapshots in one transaction.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResponse, error)
}
