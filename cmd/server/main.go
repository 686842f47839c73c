package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	jwttoken "recallguard/internal/jwt_token"
	"recallguard/internal/platform/config"
	"recallguard/internal/platform/httpserver"
	"recallguard/internal/platform/logger"
	"recallguard/internal/platform/metrics"
	"recallguard/internal/platform/redis"
	"recallguard/internal/recall/handler"
	recallmetrics "recallguard/internal/recall/metrics"
	"recallguard/internal/recall/models"
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/audit/publisher"
	"recallguard/pkg/platform/middleware/auth"
	"recallguard/pkg/platform/middleware/request"
	"recallguard/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main wires configuration, storage and collaborators, then serves the recall
// API until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "recallguard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	platformMetrics := metrics.New(reg)
	platformMetrics.BuildInfo.Set(1)
	recallMetrics := recallmetrics.NewWithRegisterer(reg)

	settings, err := models.NewSettings(id.Principal(cfg.Admin), cfg.Threshold)
	if err != nil {
		return fmt.Errorf("initial settings: %w", err)
	}

	backend, err := openBackend(ctx, cfg, settings, log)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	reports := newReportTally(redisClient, log)
	writeLimiter := newWriteLimiter(redisClient, cfg.WritesPerMinute, log)

	alertDispatcher, closeAlerts, err := newAlertDispatcher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAlerts()

	auditPublisher := publisher.NewPublisher(backend.audit,
		publisher.WithAsyncBuffer(256),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	recallService, err := service.New(backend.store, backend.tx, service.Collaborators{
		Batches: backend.batches,
		Reports: reports,
		Alerts:  alertDispatcher,
		Rewards: backend.rewards,
	},
		service.WithLogger(log),
		service.WithMetrics(recallMetrics),
		service.WithAuditPublisher(auditPublisher),
		service.WithTracerProvider(otel.GetTracerProvider()),
	)
	if err != nil {
		return err
	}

	jwtValidator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer))

	router := chi.NewRouter()
	router.Use(request.RequestID)
	router.Use(request.Recovery(log))
	router.Use(request.Logger(log))
	router.Use(request.Metrics(platformMetrics))
	router.Use(requesttime.Middleware)

	router.Handle("/metrics", metrics.Handler(reg))
	router.Get("/healthz", healthHandler(backend, redisClient, log))
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtValidator, log))
		r.Use(writeLimiter.LimitWrites)
		handler.New(recallService, log).Register(r)
		handler.NewIntake(backend.batches, reports, log).Register(r)
		handler.NewAudit(auditPublisher, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting recallguard", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down recallguard")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
