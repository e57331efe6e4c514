package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"peakscan/internal/quote"
	"peakscan/internal/report"
	"peakscan/internal/scan"
	"peakscan/internal/screen"
	"peakscan/internal/universe"
	"peakscan/pkg/config"
	"peakscan/pkg/httputil"
	"peakscan/pkg/logger"
)

// scanCmd runs a single screening pass over the universe
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one screening pass",
	Long: `Loads the symbol universe, fetches a snapshot per symbol under
bounded concurrency and rate limiting, screens against the thresholds,
and publishes the matches to the configured sinks.

A run that completes exits successfully even with zero matches; only an
unreadable universe or an invalid thresholds file aborts the run.

Example:
  go run ./cmd/screener scan --universe sp500.csv
  go run ./cmd/screener scan --universe sp500.csv --max-pct-to-high 0.03
  go run ./cmd/screener scan --universe sp500.csv --thresholds custom.yaml --interactive`,
	RunE: runScan,
}

var (
	// Scan flags
	scanUniverse    string
	scanLimit       int
	scanWorkers     int
	scanOutputDir   string
	scanThresholds  string
	scanInteractive bool
	scanQuiet       bool

	flagMinMarketCap float64
	flagMinAvgVolume float64
	flagMaxPctToHigh float64
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanUniverse, "universe", "", "universe CSV file (required)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "scan only the first N symbols (0 = all)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "override worker count")
	scanCmd.Flags().StringVar(&scanOutputDir, "output", "", "override report output directory")
	scanCmd.Flags().StringVar(&scanThresholds, "thresholds", "", "thresholds YAML file")
	scanCmd.Flags().BoolVar(&scanInteractive, "interactive", false, "prompt for threshold overrides")
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress per-symbol progress output")

	scanCmd.Flags().Float64Var(&flagMinMarketCap, "min-market-cap", screen.DefaultMinMarketCap, "minimum market capitalization")
	scanCmd.Flags().Float64Var(&flagMinAvgVolume, "min-avg-volume", screen.DefaultMinAvgVolume, "minimum average daily volume")
	scanCmd.Flags().Float64Var(&flagMaxPctToHigh, "max-pct-to-high", screen.DefaultMaxPctToHigh, "maximum distance to a reference high")

	_ = scanCmd.MarkFlagRequired("universe")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if scanWorkers > 0 {
		cfg.Scan.Workers = scanWorkers
	}
	if scanOutputDir != "" {
		cfg.Output.Dir = scanOutputDir
	}

	log := logger.New(cfg)

	th, err := resolveThresholds(cmd, log)
	if err != nil {
		return err
	}

	// Universe failures abort before any fetch is dispatched
	symbols, err := universe.Load(scanUniverse)
	if err != nil {
		log.WithError(err).Error("Failed to load universe")
		return err
	}
	if scanLimit > 0 && scanLimit < len(symbols) {
		symbols = symbols[:scanLimit]
	}

	PrintSeparator()
	PrintInfo(fmt.Sprintf("Scanning %d symbols with %d workers", len(symbols), cfg.Scan.Workers))
	PrintKeyValue("min market cap", strconv.FormatFloat(th.MinMarketCap, 'f', -1, 64), 16)
	PrintKeyValue("min avg volume", strconv.FormatFloat(th.MinAvgVolume, 'f', -1, 64), 16)
	PrintKeyValue("max pct to high", strconv.FormatFloat(th.MaxPctToHigh, 'f', -1, 64), 16)
	PrintSeparator()

	orchestrator, publisher := buildPipeline(cfg, log)
	if !scanQuiet {
		orchestrator.WithObserver(func(symbol string, state scan.State, done, total int) {
			PrintProgress(done, total, symbol, string(state))
		})
	}

	result := orchestrator.Run(context.Background(), symbols, th)

	if err := publisher.Publish(context.Background(), result); err != nil {
		// sink failures are warnings: the scan itself completed
		PrintWarning(err.Error())
	}

	PrintSeparator()
	PrintSuccess(fmt.Sprintf("Scan complete: attempted %d, succeeded %d, accepted %d",
		result.Attempted, result.Succeeded, result.Accepted))
	if result.Accepted == 0 {
		PrintInfo("No matches today.")
	}

	return nil
}

// buildPipeline wires the fetcher, orchestrator, and publisher from config
func buildPipeline(cfg *config.Config, log *logger.Logger) (*scan.Orchestrator, *report.Publisher) {
	httpClient := httputil.New(log, cfg.Scan.FetchTimeout)
	fetcher := quote.NewYahooFetcher(httpClient, log, cfg.Scan.FetchTimeout)
	pacer := scan.NewPacer(cfg.Scan.RatePerSec, cfg.Scan.Burst, cfg.Scan.Jitter)

	orchestrator := scan.NewOrchestrator(fetcher, pacer, scan.Config{
		Workers:      cfg.Scan.Workers,
		FetchTimeout: cfg.Scan.FetchTimeout,
	}, log)

	sinks := []report.Sink{
		report.NewCSVSink(cfg.Output.Dir),
		report.NewExcelSink(cfg.Output.Dir),
	}
	if cfg.SMTP.Host != "" {
		sinks = append(sinks, report.NewEmailSink(cfg.SMTP))
	}

	return orchestrator, report.NewPublisher(log, sinks...)
}

// resolveThresholds layers the threshold sources: compiled-in defaults,
// then the YAML file, then explicit flags, then the interactive prompt.
// The resulting value is immutable for the run.
func resolveThresholds(cmd *cobra.Command, log *logger.Logger) (screen.Thresholds, error) {
	th := screen.DefaultThresholds()

	if scanThresholds != "" {
		loaded, err := screen.LoadThresholds(scanThresholds)
		if err != nil {
			log.WithError(err).Error("Failed to load thresholds file")
			return th, err
		}
		th = loaded
	}

	if cmd.Flags().Changed("min-market-cap") {
		th.MinMarketCap = flagMinMarketCap
	}
	if cmd.Flags().Changed("min-avg-volume") {
		th.MinAvgVolume = flagMinAvgVolume
	}
	if cmd.Flags().Changed("max-pct-to-high") {
		th.MaxPctToHigh = flagMaxPctToHigh
	}

	if scanInteractive {
		th = promptThresholds(th, log)
	}

	if err := th.Validate(); err != nil {
		return th, fmt.Errorf("invalid thresholds: %w", err)
	}

	return th, nil
}
