package scan

import (
	"context"
	"sync"
	"time"

	"peakscan/internal/quote"
	"peakscan/internal/screen"
	"peakscan/pkg/logger"
)

// Observer is invoked once per symbol occurrence when it reaches a
// terminal state. done counts resolved occurrences so far. Observers run
// on the collector goroutine; keep them cheap.
type Observer func(symbol string, state State, done, total int)

// Config holds orchestrator tuning
type Config struct {
	Workers      int           // bounded worker budget W
	FetchTimeout time.Duration // per-symbol fetch timeout
}

// Orchestrator drives the symbol universe through fetch → derive →
// criteria with bounded concurrency.
// ⭐ SSOT: scan orchestration happens only in this package
//
// Per-symbol failures never abort the run: a failed fetch or an
// undefined derivation marks that occurrence absent and the run carries
// on. The only shared mutable state is the accumulating result, owned by
// a single collector goroutine draining the outcome channel.
type Orchestrator struct {
	fetcher  quote.Fetcher
	pacer    *Pacer
	config   Config
	logger   *logger.Logger
	observer Observer
}

// outcome is the terminal report for one symbol occurrence
type outcome struct {
	symbol string
	state  State
	record *Record
}

// NewOrchestrator creates a new scan orchestrator
func NewOrchestrator(fetcher quote.Fetcher, pacer *Pacer, cfg Config, log *logger.Logger) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Orchestrator{
		fetcher: fetcher,
		pacer:   pacer,
		config:  cfg,
		logger:  log.WithField("module", "scan"),
	}
}

// WithObserver sets the per-symbol progress callback
func (o *Orchestrator) WithObserver(obs Observer) *Orchestrator {
	o.observer = obs
	return o
}

// Run scans the universe and returns the frozen result.
//
// Every occurrence in symbols is processed exactly once, duplicates
// included. Records accumulate in completion order. The run completes
// only after every dispatched fetch has resolved; an empty universe
// yields a well-formed empty result.
func (o *Orchestrator) Run(ctx context.Context, symbols []string, th screen.Thresholds) *Result {
	result := &Result{
		Records:    make([]Record, 0),
		Timestamp:  time.Now(),
		Thresholds: th,
	}

	total := len(symbols)
	o.logger.WithFields(map[string]interface{}{
		"symbols": total,
		"workers": o.config.Workers,
	}).Info("Starting scan")

	if total == 0 {
		o.logger.Info("Universe is empty, nothing to scan")
		return result
	}

	symbolCh := make(chan string, total)
	outcomeCh := make(chan outcome, total)

	var wg sync.WaitGroup
	for i := 0; i < o.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			o.worker(ctx, workerID, symbolCh, outcomeCh, th)
		}(i)
	}

	for _, symbol := range symbols {
		symbolCh <- symbol
	}
	close(symbolCh)

	go func() {
		wg.Wait()
		close(outcomeCh)
	}()

	// Single collector: one append per resolved symbol, no interleaving
	done := 0
	for out := range outcomeCh {
		done++
		result.Attempted++

		switch out.state {
		case StateAccepted:
			result.Succeeded++
			result.Accepted++
			result.Records = append(result.Records, *out.record)
		case StateRejected:
			result.Succeeded++
			result.Rejected++
		case StateAbsent:
			// excluded, already logged by the worker
		}

		if o.observer != nil {
			o.observer(out.symbol, out.state, done, total)
		}
	}

	o.logger.WithFields(map[string]interface{}{
		"attempted": result.Attempted,
		"succeeded": result.Succeeded,
		"accepted":  result.Accepted,
		"rejected":  result.Rejected,
	}).Info("Scan completed")

	return result
}

// worker processes symbols until the queue drains
func (o *Orchestrator) worker(ctx context.Context, workerID int, symbolCh <-chan string, outcomeCh chan<- outcome, th screen.Thresholds) {
	for symbol := range symbolCh {
		if o.pacer != nil {
			if err := o.pacer.Wait(ctx); err != nil {
				outcomeCh <- outcome{symbol: symbol, state: StateAbsent}
				continue
			}
		}

		outcomeCh <- o.process(ctx, workerID, symbol, th)
	}
}

// process runs one symbol through fetch → derive → criteria
func (o *Orchestrator) process(ctx context.Context, workerID int, symbol string, th screen.Thresholds) outcome {
	fetchCtx := ctx
	if o.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, o.config.FetchTimeout)
		defer cancel()
	}

	snap, ok := o.fetcher.Fetch(fetchCtx, symbol)
	if !ok {
		o.logger.WithFields(map[string]interface{}{
			"worker": workerID,
			"symbol": symbol,
		}).Debug("Fetch returned no data")
		return outcome{symbol: symbol, state: StateAbsent}
	}

	metrics, ok := screen.Derive(snap)
	if !ok {
		o.logger.WithFields(map[string]interface{}{
			"worker": workerID,
			"symbol": symbol,
		}).Debug("Derivation undefined, excluding symbol")
		return outcome{symbol: symbol, state: StateAbsent}
	}

	if !screen.Passes(snap, metrics, th) {
		return outcome{symbol: symbol, state: StateRejected}
	}

	return outcome{
		symbol: symbol,
		state:  StateAccepted,
		record: &Record{Snapshot: *snap, Metrics: metrics},
	}
}
