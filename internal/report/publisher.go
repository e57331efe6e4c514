package report

import (
	"context"
	"fmt"

	"peakscan/internal/scan"
	"peakscan/pkg/logger"
)

// Sink is an external reporting destination for a finalized scan result
type Sink interface {
	Name() string
	Publish(ctx context.Context, result *scan.Result) error
}

// Publisher fans a scan result out to every configured sink.
// ⭐ SSOT: sink fan-out and failure isolation live here
//
// Sinks are isolated: one failing sink never prevents the others from
// receiving the result. Failures are logged as warnings and reported in
// aggregate; the scan itself is still considered successful.
type Publisher struct {
	sinks  []Sink
	logger *logger.Logger
}

// NewPublisher creates a publisher over the given sinks
func NewPublisher(log *logger.Logger, sinks ...Sink) *Publisher {
	return &Publisher{
		sinks:  sinks,
		logger: log.WithField("module", "report"),
	}
}

// Publish delivers the result to every sink, collecting failures
func (p *Publisher) Publish(ctx context.Context, result *scan.Result) error {
	var failed []string

	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, result); err != nil {
			p.logger.WithError(err).WithField("sink", sink.Name()).Warn("Sink failed")
			failed = append(failed, fmt.Sprintf("%s: %v", sink.Name(), err))
			continue
		}

		p.logger.WithFields(map[string]interface{}{
			"sink":    sink.Name(),
			"records": len(result.Records),
		}).Info("Published scan result")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d sinks failed: %v", len(failed), len(p.sinks), failed)
	}

	return nil
}
