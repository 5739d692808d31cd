package api

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultRetryAfter is the backoff used when a 429 response carries no usable Retry-After.
const defaultRetryAfter = 30 * time.Second

// RateLimiter throttles generation calls with a token bucket and honours
// the backoff requested by 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerMinute calls per minute.
// Zero or a negative value disables the token bucket; 429 backoff still applies.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	limit := rate.Inf
	burst := 0
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
		burst = max(1, requestsPerMinute/10)
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimit sets a backoff from a Retry-After header value in seconds.
func (r *RateLimiter) RecordRateLimit(retryAfter string) {
	backoff := defaultRetryAfter
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
		backoff = time.Duration(secs) * time.Second
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(backoff)
}

// BackoffRemaining returns how long callers must still wait after a 429.
func (r *RateLimiter) BackoffRemaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(0, time.Until(r.retryAt))
}
