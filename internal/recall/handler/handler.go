package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/httputil"
	"recallguard/pkg/requestcontext"
)

// Service defines the recall operations exposed over HTTP.
type Service interface {
	Initiate(ctx context.Context, req service.InitiateRequest) (id.RecallID, error)
	Verify(ctx context.Context, recallID id.RecallID, approve bool, caller id.Principal) error
	Dispute(ctx context.Context, recallID id.RecallID, notes string, caller id.Principal) error
	ResolveDispute(ctx context.Context, recallID id.RecallID, resolution string, newStatus models.RecallStatus, caller id.Principal) error
	UpdateStatus(ctx context.Context, recallID id.RecallID, newStatus models.RecallStatus, notes string, caller id.Principal) error

	SetThreshold(ctx context.Context, threshold uint64, caller id.Principal) error
	Pause(ctx context.Context, caller id.Principal) error
	Unpause(ctx context.Context, caller id.Principal) error
	TransferOwnership(ctx context.Context, newAdmin id.Principal, caller id.Principal) error

	GetRecall(ctx context.Context, recallID id.RecallID) (*models.Recall, error)
	GetBatchStatus(ctx context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error)
	GetDispute(ctx context.Context, recallID id.RecallID) (*models.Dispute, error)
	GetVote(ctx context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error)
	GetMetadata(ctx context.Context, recallID id.RecallID) (*models.RecallMetadata, error)
	Settings(ctx context.Context) (*models.Settings, error)
}

// Handler wires recall endpoints to the recall service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a recall handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts recall endpoints on the router. The router must already
// carry the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recalls", h.HandleInitiate)
	r.Get("/recalls/{recallID}", h.HandleGetRecall)
	r.Post("/recalls/{recallID}/votes", h.HandleVote)
	r.Get("/recalls/{recallID}/votes/{voter}", h.HandleGetVote)
	r.Post("/recalls/{recallID}/dispute", h.HandleDispute)
	r.Get("/recalls/{recallID}/dispute", h.HandleGetDispute)
	r.Post("/recalls/{recallID}/dispute/resolve", h.HandleResolveDispute)
	r.Put("/recalls/{recallID}/status", h.HandleUpdateStatus)
	r.Get("/recalls/{recallID}/metadata", h.HandleGetMetadata)
	r.Get("/batches/{batchID}/recall-status", h.HandleGetBatchStatus)

	r.Get("/settings", h.HandleGetSettings)
	r.Put("/admin/threshold", h.HandleSetThreshold)
	r.Post("/admin/pause", h.HandlePause)
	r.Post("/admin/unpause", h.HandleUnpause)
	r.Put("/admin/owner", h.HandleTransferOwnership)
}

// HandleInitiate handles POST /recalls.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[InitiateRecallRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	recallID, err := h.service.Initiate(ctx, service.InitiateRequest{
		BatchID:         req.ParsedBatchID(),
		Reason:          req.Reason,
		LinkedReportIDs: req.LinkedReportIDs,
		Payload:         req.Payload,
		Caller:          caller,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "initiate recall", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, InitiateRecallResponse{RecallID: recallID})
}

// HandleVote handles POST /recalls/{recallID}/votes.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Verify(ctx, recallID, *req.Approve, caller); err != nil {
		h.writeServiceError(ctx, w, "record vote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDispute handles POST /recalls/{recallID}/dispute.
func (h *Handler) HandleDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DisputeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.Dispute(ctx, recallID, req.Notes, caller); err != nil {
		h.writeServiceError(ctx, w, "dispute recall", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResolveDispute handles POST /recalls/{recallID}/dispute/resolve.
func (h *Handler) HandleResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolveDisputeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.ResolveDispute(ctx, recallID, req.Resolution, req.TargetStatus(), caller); err != nil {
		h.writeServiceError(ctx, w, "resolve dispute", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateStatus handles PUT /recalls/{recallID}/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.UpdateStatus(ctx, recallID, req.TargetStatus(), req.Notes, caller); err != nil {
		h.writeServiceError(ctx, w, "update recall status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetThreshold handles PUT /admin/threshold.
func (h *Handler) HandleSetThreshold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetThresholdRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.SetThreshold(ctx, *req.Threshold, caller); err != nil {
		h.writeServiceError(ctx, w, "set threshold", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePause handles POST /admin/pause.
func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.handleAdminToggle(w, r, "pause", h.service.Pause)
}

// HandleUnpause handles POST /admin/unpause.
func (h *Handler) HandleUnpause(w http.ResponseWriter, r *http.Request) {
	h.handleAdminToggle(w, r, "unpause", h.service.Unpause)
}

func (h *Handler) handleAdminToggle(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, id.Principal) error) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	if err := op(ctx, caller); err != nil {
		h.writeServiceError(ctx, w, action, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransferOwnership handles PUT /admin/owner.
func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferOwnershipRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.service.TransferOwnership(ctx, req.ParsedAdmin(), caller); err != nil {
		h.writeServiceError(ctx, w, "transfer ownership", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetRecall handles GET /recalls/{recallID}.
func (h *Handler) HandleGetRecall(w http.ResponseWriter, r *http.Request) {
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	recall, err := h.service.GetRecall(r.Context(), recallID)
	h.writeQuery(w, r, "get recall", recall, err)
}

// HandleGetDispute handles GET /recalls/{recallID}/dispute.
func (h *Handler) HandleGetDispute(w http.ResponseWriter, r *http.Request) {
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	dispute, err := h.service.GetDispute(r.Context(), recallID)
	h.writeQuery(w, r, "get dispute", dispute, err)
}

// HandleGetVote handles GET /recalls/{recallID}/votes/{voter}.
func (h *Handler) HandleGetVote(w http.ResponseWriter, r *http.Request) {
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	voter, err := id.ParsePrincipal(chi.URLParam(r, "voter"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vote, err := h.service.GetVote(r.Context(), recallID, voter)
	h.writeQuery(w, r, "get vote", vote, err)
}

// HandleGetMetadata handles GET /recalls/{recallID}/metadata.
func (h *Handler) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	recallID, ok := h.recallIDParam(w, r)
	if !ok {
		return
	}
	metadata, err := h.service.GetMetadata(r.Context(), recallID)
	h.writeQuery(w, r, "get metadata", metadata, err)
}

// HandleGetBatchStatus handles GET /batches/{batchID}/recall-status.
func (h *Handler) HandleGetBatchStatus(w http.ResponseWriter, r *http.Request) {
	batchID, err := id.ParseBatchID(chi.URLParam(r, "batchID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	status, err := h.service.GetBatchStatus(r.Context(), batchID)
	h.writeQuery(w, r, "get batch status", status, err)
}

// HandleGetSettings handles GET /settings.
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, "get settings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SettingsResponse{
		Owner:         settings.Admin,
		Paused:        settings.Paused,
		Threshold:     settings.Threshold,
		RecallCounter: settings.RecallCounter,
		LedgerHeight:  settings.Height,
	})
}

// writeQuery writes a keyed read. An unknown key is a nil pointer, which
// encodes as null with 200.
func (h *Handler) writeQuery(w http.ResponseWriter, r *http.Request, action string, record any, err error) {
	if err != nil {
		h.writeServiceError(r.Context(), w, action, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) requireCaller(ctx context.Context, w http.ResponseWriter) (id.Principal, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		h.logger.ErrorContext(ctx, "caller missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return caller, true
}

func (h *Handler) recallIDParam(w http.ResponseWriter, r *http.Request) (id.RecallID, bool) {
	recallID, err := id.ParseRecallID(chi.URLParam(r, "recallID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return recallID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"caller", requestcontext.Caller(ctx),
		"error", err,
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeDependencyFailure:
		h.logger.ErrorContext(ctx, "failed to "+action, attrs...)
	default:
		h.logger.WarnContext(ctx, action+" rejected", attrs...)
	}
	httputil.WriteError(w, err)
}
