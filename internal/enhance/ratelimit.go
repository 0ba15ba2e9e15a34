package enhance

import (
	"context"
	"sync"
	"time"
)

// RateLimiter paces image API calls with a token bucket refilled at
// requestsPerMinute. Capacity equals the per-minute budget, so a fresh
// limiter allows a full burst before throttling.
type RateLimiter struct {
	mu         sync.Mutex
	capacity   float64
	perSecond  float64
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a limiter for the given per-minute budget.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	cap := float64(requestsPerMinute)
	return &RateLimiter{
		capacity:   cap,
		perSecond:  cap / 60.0,
		tokens:     cap,
		lastRefill: time.Now(),
	}
}

// Wait consumes a token, blocking until one is available or the context
// is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens >= 1.0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		wait := time.Duration((1.0 - r.tokens) / r.perSecond * float64(time.Second))
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Record429 drains the bucket after the API reported a rate limit, so
// subsequent calls back off for a full refill interval.
func (r *RateLimiter) Record429() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = 0
}

// refill credits tokens for elapsed time. Caller holds the lock.
func (r *RateLimiter) refill() {
	now := time.Now()
	r.tokens += now.Sub(r.lastRefill).Seconds() * r.perSecond
	r.lastRefill = now
	if r.tokens > r.capacity {
		r.tokens = r.capacity
	}
}
