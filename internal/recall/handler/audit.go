package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/audit"
	"recallguard/pkg/platform/httputil"
	"recallguard/pkg/requestcontext"
)

// AuditLister reads the audit trail of one recall.
type AuditLister interface {
	List(ctx context.Context, recallID id.RecallID) ([]audit.Event, error)
}

// AuditEventResponse is one entry of GET /recalls/{recallID}/audit.
type AuditEventResponse struct {
	Action    string       `json:"action"`
	Category  string       `json:"category"`
	Actor     id.Principal `json:"actor"`
	RecallID  id.RecallID  `json:"recall_id"`
	BatchID   string       `json:"batch_id,omitempty"`
	Detail    string       `json:"detail,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type AuditHandler struct {
	lister AuditLister
	logger *slog.Logger
}

func NewAudit(lister AuditLister, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{lister: lister, logger: logger}
}

func (h *AuditHandler) Register(r chi.Router) {
	r.Get("/recalls/{recallID}/audit", h.HandleListAudit)
}

// HandleListAudit handles GET /recalls/{recallID}/audit. A recall with no
// events yields an empty list.
func (h *AuditHandler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recallID, err := id.ParseRecallID(chi.URLParam(r, "recallID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.lister.List(ctx, recallID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"recall_id", recallID.String(),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}

	resp := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, AuditEventResponse{
			Action:    e.Action,
			Category:  string(e.Category),
			Actor:     e.Actor,
			RecallID:  e.RecallID,
			BatchID:   e.BatchID,
			Detail:    e.Detail,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
