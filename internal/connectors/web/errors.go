package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

// APIError is a non-2xx response from a remote source.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("web: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// RateLimitError reports that a source refused the request for rate reasons.
type RateLimitError struct {
	RetryAfter time.Duration
	URL        string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("web: rate limited by %s, retry after %s", e.URL, e.RetryAfter)
	}
	return fmt.Sprintf("web: rate limited by %s", e.URL)
}

// Unwrap lets errors.Is match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// IsNotFound checks if the error is a 404 from a source.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}
