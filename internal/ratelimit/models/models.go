// Package models holds the rate limit result and response shapes.
package models

import "time"

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// CallerRateLimitExceededResponse is written with 429.
type CallerRateLimitExceededResponse struct {
	Error            string    `json:"error"`
	ErrorDescription string    `json:"error_description"`
	QuotaLimit       int       `json:"quota_limit"`
	QuotaRemaining   int       `json:"quota_remaining"`
	QuotaReset       time.Time `json:"quota_reset"`
}

// CallerKey is the bucket key for a caller's state-changing requests.
func CallerKey(caller string) string {
	return "ratelimit:writes:" + caller
}
