// Package service implements the recall lifecycle manager: initiation,
// verification votes, disputes, administrative status control and the
// read-only query surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recallguard/internal/recall/metrics"
	"recallguard/internal/recall/models"
	"recallguard/internal/recall/ports"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/audit"
	"recallguard/pkg/platform/sentinel"
	"recallguard/pkg/requestcontext"
)

const tracerName = "recallguard/internal/recall/service"

// Dependency labels used in logs, metrics and error messages.
const (
	depBatchDirectory = "batch_directory"
	depReportTally    = "report_tally"
	depAlerts         = "alerts"
	depRewards        = "rewards"
)

// Collaborators groups the capabilities the manager calls out to.
type Collaborators struct {
	Batches ports.BatchDirectory
	Reports ports.ReportTally
	Alerts  ports.AlertDispatcher
	Rewards ports.RewardDispatcher
}

// Service is the recall lifecycle manager. Every state-changing operation runs
// inside one StoreTx unit of work, including its collaborator calls.
type Service struct {
	store          Store
	tx             StoreTx
	batches        ports.BatchDirectory
	reports        ports.ReportTally
	alerts         ports.AlertDispatcher
	rewards        ports.RewardDispatcher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher ports.AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithTracerProvider overrides the global otel tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New constructs the manager. All collaborators are required.
func New(store Store, tx StoreTx, collab Collaborators, opts ...Option) (*Service, error) {
	if store == nil || tx == nil {
		return nil, errors.New("store and transaction runner are required")
	}
	if collab.Batches == nil || collab.Reports == nil || collab.Alerts == nil || collab.Rewards == nil {
		return nil, errors.New("batch directory, report tally, alert and reward dispatchers are required")
	}
	s := &Service{
		store:   store,
		tx:      tx,
		batches: collab.Batches,
		reports: collab.Reports,
		alerts:  collab.Alerts,
		rewards: collab.Rewards,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// startOperation opens the span for a public operation and returns a finish
// func that records latency and the outcome.
func (s *Service) startOperation(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "recall."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		}
		span.End()
		s.metrics.ObserveOperation(op, time.Since(start))
	}
}

// runInTx executes fn atomically and normalizes uncoded failures.
func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	err := s.tx.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "recall transaction failed")
}

// requireAdmin is the single authorization guard for administrative
// operations. It returns the loaded settings for the rest of the operation.
func requireAdmin(ctx context.Context, store Store, caller id.Principal) (*models.Settings, error) {
	settings, err := store.LoadSettings(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	if !settings.IsAdmin(caller) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not the administrator")
	}
	return settings, nil
}

func requireCaller(caller id.Principal) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	return nil
}

// dependencyFailure wraps a collaborator error so it aborts the whole operation.
func (s *Service) dependencyFailure(ctx context.Context, dependency string, err error) error {
	s.metrics.IncrementDependencyFailure(dependency)
	s.logger.ErrorContext(ctx, "recall collaborator call failed",
		"dependency", dependency,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeDependencyFailure, dependency+" call failed")
}

// notFoundAs maps a store miss to the given code and anything else to internal.
func notFoundAs(err error, code dErrors.Code, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(code, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+msg)
}

// emitAudit logs the event and hands it to the audit publisher. Audit is
// best-effort and never fails the operation.
func (s *Service) emitAudit(ctx context.Context, event audit.AuditEvent, caller id.Principal, recallID id.RecallID, batchID string, detail string) {
	requestID := requestcontext.RequestID(ctx)
	s.logger.InfoContext(ctx, string(event),
		"recall_id", uint64(recallID),
		"batch_id", batchID,
		"caller", caller.String(),
		"request_id", requestID,
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Actor:     caller,
		Action:    string(event),
		RecallID:  recallID,
		BatchID:   batchID,
		Detail:    detail,
		RequestID: requestID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

func alertMessage(recallID id.RecallID, batchID id.BatchID, owner id.Principal, reason string) string {
	if owner.IsZero() {
		return fmt.Sprintf("recall %d opened for batch %s: %s", recallID, batchID, reason)
	}
	return fmt.Sprintf("recall %d opened for batch %s owned by %s: %s", recallID, batchID, owner, reason)
}
