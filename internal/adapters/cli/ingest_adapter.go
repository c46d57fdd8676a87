package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/retentionwatch/internal/ports/primary"
)

// IngestAdapter translates the ingest command to IngestService calls.
type IngestAdapter struct {
	service primary.IngestService
	out     io.Writer
}

// NewIngestAdapter creates a new IngestAdapter writing to out.
func NewIngestAdapter(service primary.IngestService, out io.Writer) *IngestAdapter {
	return &IngestAdapter{
		service: service,
		out:     out,
	}
}

// Ingest persists one run and reports the assigned identifiers.
func (a *IngestAdapter) Ingest(ctx context.Context, req primary.IngestRequest) error {
	resp, err := a.service.Ingest(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Ingested run %d (%s): %d scholars\n", resp.RunID, resp.RunUID, resp.Total)
	return nil
}
