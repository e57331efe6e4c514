package scan

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the outbound request budget shared by all workers:
// a token bucket for the hard rate limit plus a bounded random delay so
// workers do not fire in synchronized bursts.
// ⭐ SSOT: request pacing lives here, not in the fetch loop
type Pacer struct {
	limiter *rate.Limiter
	jitter  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPacer creates a pacer allowing ratePerSec requests per second with
// the given burst, adding up to jitter of extra spacing per request
func NewPacer(ratePerSec float64, burst int, jitter time.Duration) *Pacer {
	if burst < 1 {
		burst = 1
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		jitter:  jitter,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until the next request may be dispatched
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	if p.jitter <= 0 {
		return nil
	}

	p.mu.Lock()
	delay := time.Duration(p.rng.Int63n(int64(p.jitter)))
	p.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
