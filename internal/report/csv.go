package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"peakscan/internal/scan"
)

// CSVSink writes the scan result as a dated CSV file, one row per
// accepted record. An empty result still produces a well-formed
// header-only file.
type CSVSink struct {
	dir string
}

// NewCSVSink creates a CSV sink writing into dir
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Name returns the sink name
func (s *CSVSink) Name() string {
	return "csv"
}

// Publish writes the result file
func (s *CSVSink) Publish(ctx context.Context, result *scan.Result) error {
	path := filepath.Join(s.dir, fmt.Sprintf("scan_results_%s.csv", result.Timestamp.Format("20060102")))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range result.Records {
		if err := w.Write(renderRow(rec)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", rec.Snapshot.Symbol, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv file: %w", err)
	}

	return nil
}
