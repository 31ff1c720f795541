package util

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles file writes. A nil *Limiter never blocks.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a token bucket limiter allowing perSecond writes with the given
// burst. A non-positive rate disables throttling and returns nil.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until n writes are permitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	if l == nil {
		return ctx.Err()
	}
	return l.inner.WaitN(ctx, n)
}
