// Package csvfile implements the roster source on top of CSV check-in
// exports. It owns file handling and header/row plumbing and delegates
// all field validation to the roster package.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/example/retentionwatch/internal/ports/secondary"
	"github.com/example/retentionwatch/internal/roster"
)

// Loader implements secondary.RosterSource for CSV files.
type Loader struct{}

// NewLoader creates a CSV roster loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the CSV at path and returns validated records. A missing
// required column fails the whole load before any row is read. Under
// LoadStrict the first malformed row aborts the load; under
// LoadLenient malformed rows are counted and skipped. Zero usable
// records is an error either way.
func (l *Loader) Load(ctx context.Context, path string, policy secondary.LoadPolicy) (*secondary.RosterResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer file.Close()

	result, err := l.read(ctx, file, policy)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, roster.ErrEmptyRoster)
	}
	return result, nil
}

func (l *Loader) read(ctx context.Context, src io.Reader, policy secondary.LoadPolicy) (*secondary.RosterResult, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // ragged rows surface as field errors, not csv errors

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("roster has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := roster.CheckColumns(header); err != nil {
		return nil, err
	}

	result := &secondary.RosterResult{}
	for position := 1; ; position++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", position, err)
		}

		rec, err := roster.ValidateRow(rowMap(header, raw), position)
		if err != nil {
			if policy == secondary.LoadLenient {
				result.SkippedRows++
				continue
			}
			return nil, err
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// rowMap zips a header with one raw row. Short rows leave the trailing
// columns empty, which the validator then reports per field.
func rowMap(header, raw []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(raw) {
			row[col] = raw[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

var _ secondary.RosterSource = (*Loader)(nil)
