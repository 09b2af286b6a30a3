package parser

import (
	"fmt"
	"strconv"
	"time"
)

// MalformedBillError indicates the model's response could not be parsed as
// JSON or failed bill schema validation. Raw carries the full response text
// for diagnosis. It must propagate to the operator, never be recovered
// silently, and never be retried with a mutated prompt.
type MalformedBillError struct {
	Err error
	Raw string
}

func (e *MalformedBillError) Error() string {
	return fmt.Sprintf("malformed bill payload: %v (raw: %s)", e.Err, truncate(e.Raw, 500))
}

func (e *MalformedBillError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates a parser provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
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

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
