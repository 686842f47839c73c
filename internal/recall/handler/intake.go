package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/httputil"
	"recallguard/pkg/platform/sentinel"
	"recallguard/pkg/requestcontext"
)

// BatchRegistrar registers batches in the batch directory.
type BatchRegistrar interface {
	Register(ctx context.Context, batchID id.BatchID, owner id.Principal, metadata string) error
	IsBatchRegistered(ctx context.Context, batchID id.BatchID) (bool, error)
}

// ReportRecorder records contamination reports against a batch.
type ReportRecorder interface {
	RecordReport(ctx context.Context, batchID id.BatchID, reporter id.Principal) (uint64, error)
	ReportCountForBatch(ctx context.Context, batchID id.BatchID) (uint64, error)
}

// IntakeHandler feeds the batch directory and report tally that recall
// initiation reads from.
type IntakeHandler struct {
	batches BatchRegistrar
	reports ReportRecorder
	logger  *slog.Logger
}

func NewIntake(batches BatchRegistrar, reports ReportRecorder, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{batches: batches, reports: reports, logger: logger}
}

func (h *IntakeHandler) Register(r chi.Router) {
	r.Post("/batches", h.HandleRegisterBatch)
	r.Post("/batches/{batchID}/reports", h.HandleRecordReport)
	r.Get("/batches/{batchID}/reports", h.HandleReportCount)
}

// HandleRegisterBatch handles POST /batches. The caller becomes the owner.
func (h *IntakeHandler) HandleRegisterBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RegisterBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	err := h.batches.Register(ctx, req.ParsedBatchID(), caller, req.Metadata)
	if errors.Is(err, sentinel.ErrConflict) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "batch already registered"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register batch",
			"request_id", requestID,
			"batch_id", req.ParsedBatchID().String(),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register batch"))
		return
	}

	h.logger.InfoContext(ctx, "batch registered",
		"request_id", requestID,
		"batch_id", req.ParsedBatchID().String(),
		"owner", caller,
	)
	w.WriteHeader(http.StatusCreated)
}

// HandleRecordReport handles POST /batches/{batchID}/reports. Repeat reports
// from the same caller are accepted but counted once.
func (h *IntakeHandler) HandleRecordReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	batchID, ok := h.registeredBatch(w, r)
	if !ok {
		return
	}

	count, err := h.reports.RecordReport(ctx, batchID, caller)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to record report",
			"request_id", requestID,
			"batch_id", batchID.String(),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record report"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReportCountResponse{BatchID: batchID, ReportCount: count})
}

// HandleReportCount handles GET /batches/{batchID}/reports.
func (h *IntakeHandler) HandleReportCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	batchID, err := id.ParseBatchID(chi.URLParam(r, "batchID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	count, err := h.reports.ReportCountForBatch(ctx, batchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count reports",
			"request_id", requestcontext.RequestID(ctx),
			"batch_id", batchID.String(),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count reports"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReportCountResponse{BatchID: batchID, ReportCount: count})
}

func (h *IntakeHandler) registeredBatch(w http.ResponseWriter, r *http.Request) (id.BatchID, bool) {
	batchID, err := id.ParseBatchID(chi.URLParam(r, "batchID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.BatchID{}, false
	}
	registered, err := h.batches.IsBatchRegistered(r.Context(), batchID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up batch"))
		return id.BatchID{}, false
	}
	if !registered {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidBatch, "batch not registered"))
		return id.BatchID{}, false
	}
	return batchID, true
}
