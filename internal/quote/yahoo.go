package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	finance "github.com/piquette/finance-go"
	fequity "github.com/piquette/finance-go/equity"

	"peakscan/pkg/httputil"
	"peakscan/pkg/logger"
)

const defaultChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher retrieves snapshots from Yahoo Finance.
// ⭐ SSOT: Yahoo Finance calls happen only in this client
//
// Quote-level fields (price, 52-week high, market cap, average volume)
// come from the quote API; the all-time high is derived from the full
// monthly chart history; the sector is a best-effort profile lookup.
type YahooFetcher struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	chartBaseURL string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
//
// The finance-go package ships with an 80-second HTTP client; the quote
// leg must honor the same per-fetch budget as the chart and profile
// legs, so the backend is rebound to a client with fetchTimeout here.
func NewYahooFetcher(httpClient *httputil.Client, log *logger.Logger, fetchTimeout time.Duration) *YahooFetcher {
	finance.SetBackend(finance.YFinBackend, &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        finance.YFinURL,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	})

	return &YahooFetcher{
		httpClient:   httpClient,
		logger:       log.WithField("module", "yahoo"),
		chartBaseURL: defaultChartBaseURL,
	}
}

// Name returns the data source name
func (f *YahooFetcher) Name() string {
	return "yahoo"
}

// Fetch retrieves a snapshot for one symbol. Any failure along the way
// maps to absent; nothing escapes to the caller.
func (f *YahooFetcher) Fetch(ctx context.Context, symbol string) (*Snapshot, bool) {
	q, err := fequity.Get(symbol)
	if err != nil || q == nil {
		f.logger.WithError(err).WithField("symbol", symbol).Debug("Quote lookup failed")
		return nil, false
	}

	ath, err := f.fetchAllTimeHigh(ctx, symbol)
	if err != nil {
		f.logger.WithError(err).WithField("symbol", symbol).Debug("History lookup failed")
		return nil, false
	}

	snap := &Snapshot{
		Symbol:       symbol,
		CurrentPrice: q.RegularMarketPrice,
		AllTimeHigh:  ath,
		Week52High:   q.FiftyTwoWeekHigh,
		MarketCap:    float64(q.MarketCap),
		AvgVolume:    float64(q.AverageDailyVolume3Month),
	}

	// Sector is optional; a failed lookup never discards the snapshot
	if sector, err := f.fetchSector(ctx, symbol); err == nil {
		snap.Sector = sector
	}

	if !snap.Complete() {
		f.logger.WithField("symbol", symbol).Debug("Incomplete snapshot discarded")
		return nil, false
	}

	return snap, true
}

// chartResponse mirrors the Yahoo v8 chart payload, limited to the
// fields the screener needs. Null bars decode as zero and are skipped.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					High []float64 `json:"high"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchAllTimeHigh scans the full monthly history for the highest high
func (f *YahooFetcher) fetchAllTimeHigh(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/%s?range=max&interval=1mo", f.chartBaseURL, symbol)

	resp, err := f.httpClient.Get(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("chart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chart request: unexpected status code %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode chart response: %w", err)
	}

	if payload.Chart.Error != nil {
		return 0, fmt.Errorf("chart API error: %s", payload.Chart.Error.Code)
	}

	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, fmt.Errorf("chart response has no history for %s", symbol)
	}

	ath := 0.0
	for _, high := range payload.Chart.Result[0].Indicators.Quote[0].High {
		if high > ath {
			ath = high
		}
	}

	if ath <= 0 {
		return 0, fmt.Errorf("chart history has no usable highs for %s", symbol)
	}

	return ath, nil
}
