package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakscan/pkg/config"
	"peakscan/pkg/httputil"
	"peakscan/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestNewYahooFetcher_BoundsQuoteClient(t *testing.T) {
	NewYahooFetcher(httputil.New(testLogger(t), time.Second), testLogger(t), 150*time.Millisecond)

	backend, ok := finance.GetBackend(finance.YFinBackend).(*finance.BackendConfiguration)
	require.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, backend.HTTPClient.Timeout)
	assert.Equal(t, finance.YFinURL, backend.URL)
}

func TestFetch_SlowQuoteEndpointReturnsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	fetchTimeout := 100 * time.Millisecond
	fetcher := NewYahooFetcher(httputil.New(testLogger(t), fetchTimeout), testLogger(t), fetchTimeout)

	// Point the quote backend at the stalled server, keeping the bounded
	// client installed by the constructor.
	backend, ok := finance.GetBackend(finance.YFinBackend).(*finance.BackendConfiguration)
	require.True(t, ok)
	backend.URL = srv.URL

	start := time.Now()
	snap, ok := fetcher.Fetch(context.Background(), "AAPL")
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Nil(t, snap)
	assert.Less(t, elapsed, time.Second, "quote leg must give up within the fetch timeout")
}

func TestFetchAllTimeHigh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Null bars are delisted months; they decode as zero and are skipped
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"high":[12.5,null,340.25,99.9]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	fetcher := NewYahooFetcher(httputil.New(testLogger(t), time.Second), testLogger(t), time.Second)
	fetcher.chartBaseURL = srv.URL

	ath, err := fetcher.fetchAllTimeHigh(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 340.25, ath)
}

func TestFetchAllTimeHigh_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"not found", `{}`, http.StatusNotFound},
		{"api error", `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data"}}}`, http.StatusOK},
		{"empty history", `{"chart":{"result":[{"indicators":{"quote":[{"high":[]}]}}],"error":null}}`, http.StatusOK},
		{"all nulls", `{"chart":{"result":[{"indicators":{"quote":[{"high":[null,null]}]}}],"error":null}}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			fetcher := NewYahooFetcher(httputil.New(testLogger(t), time.Second), testLogger(t), time.Second)
			fetcher.chartBaseURL = srv.URL

			_, err := fetcher.fetchAllTimeHigh(context.Background(), "ZZZZ")
			assert.Error(t, err)
		})
	}
}
