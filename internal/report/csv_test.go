package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSink_Publish(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	sink := NewCSVSink(dir)
	require.NoError(t, sink.Publish(context.Background(), result))

	f, err := os.Open(filepath.Join(dir, "scan_results_20260831.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"AAA", "Technology",
		"97.46", "100.00", "0.03", "99.00", "0.02",
		"1000000000.00", "2000000.00",
	}, rows[1])
}

func TestCSVSink_EmptyResultWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	result.Records = nil

	sink := NewCSVSink(dir)
	require.NoError(t, sink.Publish(context.Background(), result))

	f, err := os.Open(filepath.Join(dir, "scan_results_20260831.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestCSVSink_BadDirectory(t *testing.T) {
	sink := NewCSVSink(filepath.Join(t.TempDir(), "does", "not", "exist"))
	assert.Error(t, sink.Publish(context.Background(), sampleResult()))
}

func TestRenderRow_RoundsAtBoundaryOnly(t *testing.T) {
	result := sampleResult()
	row := renderRow(result.Records[0])

	// rendered values are rounded ...
	assert.Equal(t, "0.03", row[4])
	// ... while the record itself keeps full precision
	assert.Equal(t, 0.02544, result.Records[0].Metrics.PctToATH)
}
