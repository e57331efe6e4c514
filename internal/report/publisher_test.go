package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakscan/internal/quote"
	"peakscan/internal/scan"
	"peakscan/internal/screen"
	"peakscan/pkg/config"
	"peakscan/pkg/logger"
)

type fakeSink struct {
	name     string
	err      error
	received *scan.Result
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Publish(ctx context.Context, result *scan.Result) error {
	s.received = result
	return s.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func sampleResult() *scan.Result {
	return &scan.Result{
		Records: []scan.Record{
			{
				Snapshot: quote.Snapshot{
					Symbol:       "AAA",
					Sector:       "Technology",
					CurrentPrice: 97.456,
					AllTimeHigh:  100,
					Week52High:   99,
					MarketCap:    1e9,
					AvgVolume:    2e6,
				},
				Metrics: screen.Metrics{PctToATH: 0.02544, PctTo52w: 0.0156},
			},
		},
		Timestamp:  time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
		Thresholds: screen.DefaultThresholds(),
		Attempted:  3,
		Succeeded:  2,
		Accepted:   1,
		Rejected:   1,
	}
}

func TestPublisher_AllSinksReceiveResult(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	result := sampleResult()

	p := NewPublisher(testLogger(t), a, b)
	require.NoError(t, p.Publish(context.Background(), result))

	assert.Same(t, result, a.received)
	assert.Same(t, result, b.received)
}

func TestPublisher_FailingSinkDoesNotBlockOthers(t *testing.T) {
	failing := &fakeSink{name: "spreadsheet", err: fmt.Errorf("api quota exceeded")}
	healthy := &fakeSink{name: "csv"}
	result := sampleResult()

	p := NewPublisher(testLogger(t), failing, healthy)
	err := p.Publish(context.Background(), result)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet")
	assert.Same(t, result, healthy.received, "healthy sink must still receive the result")
}

func TestPublisher_NoSinks(t *testing.T) {
	p := NewPublisher(testLogger(t))
	assert.NoError(t, p.Publish(context.Background(), sampleResult()))
}
