package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestInterval spaces successive requests to the source site.
// The delay is a design requirement, not an optimization target: the
// site rate-limits aggressive clients.
const DefaultRequestInterval = 500 * time.Millisecond

// Pacer enforces the politeness delay between outbound requests using a
// token bucket with no bursting.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer allowing one request per interval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultRequestInterval
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
