package parser

import (
	"fmt"
	"strconv"
	"time"

	"jobclip/internal/domain"
)

// RateLimitError indicates a provider returned HTTP 429. It is carried inside
// the provider's ParseError so callers retrying at a higher level can honour
// RetryAfter.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   domain.Provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider domain.Provider, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// StatusError builds the provider failure for a non-2xx reply.
func StatusError(provider domain.Provider, status int, body []byte, retryAfter string) error {
	baseErr := fmt.Errorf("status %d: %s", status, truncate(string(body), 500))
	if status == 429 {
		return domain.ProviderFailure(provider,
			NewRateLimitError(provider, baseErr, ParseRetryAfterHeader(retryAfter)))
	}
	return domain.ProviderFailure(provider, baseErr)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
