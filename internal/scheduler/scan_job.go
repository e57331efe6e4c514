package scheduler

import (
	"context"
	"fmt"

	"peakscan/internal/report"
	"peakscan/internal/scan"
	"peakscan/internal/screen"
	"peakscan/internal/universe"
	"peakscan/pkg/logger"
)

// ScanJob runs the full screen on a cron schedule: load universe,
// orchestrate the scan, publish the result.
type ScanJob struct {
	universePath string
	schedule     string
	thresholds   screen.Thresholds
	orchestrator *scan.Orchestrator
	publisher    *report.Publisher
	logger       *logger.Logger
}

// NewScanJob creates a new scan job
func NewScanJob(
	universePath string,
	schedule string,
	th screen.Thresholds,
	orchestrator *scan.Orchestrator,
	publisher *report.Publisher,
	log *logger.Logger,
) *ScanJob {
	return &ScanJob{
		universePath: universePath,
		schedule:     schedule,
		thresholds:   th,
		orchestrator: orchestrator,
		publisher:    publisher,
		logger:       log,
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "scan"
}

// Schedule returns the cron schedule expression
func (j *ScanJob) Schedule() string {
	return j.schedule
}

// Run executes one scan. The universe file is re-read on every tick so
// edits between runs are picked up.
func (j *ScanJob) Run(ctx context.Context) error {
	symbols, err := universe.Load(j.universePath)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	result := j.orchestrator.Run(ctx, symbols, j.thresholds)

	if err := j.publisher.Publish(ctx, result); err != nil {
		// sink failures are warnings: the scan itself completed
		j.logger.WithError(err).Warn("Some sinks failed")
	}

	j.logger.Infof("Scheduled scan finished: %d of %d symbols accepted", result.Accepted, result.Attempted)
	return nil
}
