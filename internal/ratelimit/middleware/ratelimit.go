// Package middleware limits how many state-changing requests each caller may
// make per window.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"recallguard/internal/ratelimit/models"
	"recallguard/pkg/platform/httputil"
	"recallguard/pkg/requestcontext"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter  Limiter
	logger   *slog.Logger
	limit    int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter Limiter, logger *slog.Logger, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
		limit:   limit,
		window:  window,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit <= 0 {
		m.disabled = true
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// LimitWrites applies the per-caller limit to POST, PUT, PATCH and DELETE.
// Reads pass through. A limiter failure lets the request through.
func (m *Middleware) LimitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled || isRead(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		caller := requestcontext.Caller(ctx)
		if caller.IsZero() {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.limiter.Allow(ctx, models.CallerKey(caller.String()), m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check caller rate limit",
				"error", err,
				"caller", caller,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.logger.WarnContext(ctx, "caller rate limit exceeded",
				"caller", caller,
				"request_id", requestcontext.RequestID(ctx),
			)
			writeCallerRateLimitExceeded(w, result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isRead(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeCallerRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.CallerRateLimitExceededResponse{
		Error:            "rate_limit_exceeded",
		ErrorDescription: "Too many state-changing requests. Please try again later.",
		QuotaLimit:       result.Limit,
		QuotaRemaining:   result.Remaining,
		QuotaReset:       result.ResetAt,
	})
}
