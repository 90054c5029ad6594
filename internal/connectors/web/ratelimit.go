package web

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive request rate per source (requests/sec).
	DefaultRate = 2.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// maxBackoff caps how long a Retry-After can park a source.
	maxBackoff = time.Minute
)

// RateLimiter throttles requests to a single source.
// A token bucket paces requests proactively; a 429 with Retry-After
// blocks further requests until the source's stated time.
type RateLimiter struct {
	mu        sync.Mutex
	bucket    *rate.Limiter
	blockedTo time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with a
// burst of one. A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	blockedTo := r.blockedTo
	r.mu.Unlock()

	if wait := time.Until(blockedTo); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.bucket.Wait(ctx)
}

// UpdateFromResponse records a Retry-After from a 429 or 503 response.
// It returns the parsed delay, zero when none was given.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0
	}

	delay := parseRetryAfter(resp.Header.Get(HeaderRetryAfter))
	if delay <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(delay); until.After(r.blockedTo) {
		r.blockedTo = until
	}
	return delay
}

// BlockedUntil returns the time before which requests are held back.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedTo
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return clampBackoff(time.Duration(secs) * time.Second)
	}
	if at, err := http.ParseTime(v); err == nil {
		return clampBackoff(time.Until(at))
	}
	return 0
}

func clampBackoff(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
