package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"recallguard/internal/platform/redis"
	"recallguard/pkg/platform/httputil"
)

const healthTimeout = 2 * time.Second

// healthHandler reports 503 when a configured backing service is unreachable.
// In-memory deployments are always healthy.
func healthHandler(backend *recallBackend, redisClient *redis.Client, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		if backend.db != nil {
			checks["postgres"] = "ok"
			if err := backend.db.PingContext(ctx); err != nil {
				log.WarnContext(ctx, "postgres health check failed", "error", err)
				checks["postgres"] = "unavailable"
				healthy = false
			}
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Health(ctx); err != nil {
				log.WarnContext(ctx, "redis health check failed", "error", err)
				checks["redis"] = "unavailable"
				healthy = false
			}
		}

		status := http.StatusOK
		checks["status"] = "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			checks["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, checks)
	}
}
