package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recallguard/internal/ratelimit/models"
	"recallguard/internal/ratelimit/store/bucket"
	"recallguard/pkg/testutil"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string, int, time.Duration) (*models.RateLimitResult, error) {
	return nil, errors.New("redis down")
}

func serve(h http.Handler, method, caller string) *httptest.ResponseRecorder {
	req := testutil.WithCaller(httptest.NewRequest(method, "/recalls", nil), caller)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLimitWrites(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("writes beyond the limit get 429", func(t *testing.T) {
		h := New(bucket.NewInMemoryBucketStore(), logger, 2, time.Minute).LimitWrites(ok)
		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "acme").Code)
		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "acme").Code)

		rr := serve(h, http.MethodPost, "acme")
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
		assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "other").Code)
	})

	t.Run("reads are not limited", func(t *testing.T) {
		h := New(bucket.NewInMemoryBucketStore(), logger, 1, time.Minute).LimitWrites(ok)
		for range 5 {
			assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "acme").Code)
		}
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		h := New(brokenLimiter{}, logger, 1, time.Minute).LimitWrites(ok)
		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "acme").Code)
	})

	t.Run("zero limit disables", func(t *testing.T) {
		h := New(brokenLimiter{}, logger, 0, time.Minute).LimitWrites(ok)
		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, "acme").Code)
	})
}
