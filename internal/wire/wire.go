// Package wire provides dependency injection for the retentionwatch
// application. It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/retentionwatch/internal/adapters/cli"
	"github.com/example/retentionwatch/internal/adapters/csvfile"
	"github.com/example/retentionwatch/internal/adapters/postgres"
	"github.com/example/retentionwatch/internal/adapters/sqlite"
	"github.com/example/retentionwatch/internal/app"
	"github.com/example/retentionwatch/internal/config"
	"github.com/example/retentionwatch/internal/db"
	"github.com/example/retentionwatch/internal/ports/primary"
	"github.com/example/retentionwatch/internal/ports/secondary"
)

var (
	cfg           *config.Config
	cfgErr        error
	cfgOnce       sync.Once
	reportService primary.ReportService
	reportOnce    sync.Once
	runStore      secondary.RunStore
	storeErr      error
	storeOnce     sync.Once
)

// Config returns the loaded configuration, loading it on first use.
func Config() (*config.Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = config.Load()
	})
	return cfg, cfgErr
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	reportOnce.Do(func() {
		reportService = app.NewReportService(csvfile.NewLoader())
	})
	return reportService
}

// RunStore returns the singleton run store for the configured driver.
// The store connects (and for SQLite, applies the schema) on first use.
func RunStore(ctx context.Context) (secondary.RunStore, error) {
	storeOnce.Do(func() {
		var c *config.Config
		c, storeErr = Config()
		if storeErr != nil {
			return
		}
		runStore, storeErr = newRunStore(ctx, c)
	})
	return runStore, storeErr
}

func newRunStore(ctx context.Context, c *config.Config) (secondary.RunStore, error) {
	switch c.DBDriver {
	case config.DriverPostgres:
		return postgres.NewRunRepository(ctx, c.DatabaseURL)
	default:
		path := c.DBPath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open run store: %w", err)
		}
		return sqlite.NewRunRepository(database), nil
	}
}

// IngestService returns a new IngestService over the configured store.
func IngestService(ctx context.Context) (primary.IngestService, error) {
	store, err := RunStore(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewIngestService(csvfile.NewLoader(), store), nil
}

// HistoryService returns a new HistoryService over the configured store.
func HistoryService(ctx context.Context) (primary.HistoryService, error) {
	store, err := RunStore(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewHistoryService(store), nil
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	return ReportAdapterWithOutput(os.Stdout)
}

// ReportAdapterWithOutput returns a ReportAdapter writing to the given
// output. This variant allows testing or alternate destinations.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(ReportService(), out)
}

// IngestAdapter returns a new IngestAdapter writing to stdout.
func IngestAdapter(ctx context.Context) (*cliadapter.IngestAdapter, error) {
	service, err := IngestService(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewIngestAdapter(service, os.Stdout), nil
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter(ctx context.Context) (*cliadapter.HistoryAdapter, error) {
	service, err := HistoryService(ctx)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewHistoryAdapter(service, os.Stdout), nil
}
