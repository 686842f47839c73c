package handler

import (
	"strings"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

// InitiateRecallRequest is the body for POST /recalls.
type InitiateRecallRequest struct {
	BatchID         string   `json:"batch_id"`
	Reason          string   `json:"reason"`
	LinkedReportIDs []string `json:"linked_report_ids,omitempty"`
	Payload         []byte   `json:"payload,omitempty"`

	parsedBatchID id.BatchID
}

// Validate parses the batch id. Reason and metadata bounds are enforced by
// the service so that every entry point reports the same codes.
func (r *InitiateRecallRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	batchID, err := id.ParseBatchID(r.BatchID)
	if err != nil {
		return err
	}
	r.parsedBatchID = batchID
	return nil
}

func (r *InitiateRecallRequest) ParsedBatchID() id.BatchID {
	return r.parsedBatchID
}

// VoteRequest is the body for POST /recalls/{recallID}/votes.
type VoteRequest struct {
	Approve *bool `json:"approve"`
}

func (r *VoteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Approve == nil {
		return dErrors.New(dErrors.CodeValidation, "approve is required")
	}
	return nil
}

// DisputeRequest is the body for POST /recalls/{recallID}/dispute.
type DisputeRequest struct {
	Notes string `json:"notes"`
}

func (r *DisputeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// ResolveDisputeRequest is the body for POST /recalls/{recallID}/dispute/resolve.
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
	NewStatus  string `json:"new_status"`
}

// Validate only checks presence. The service parses the status after the
// admin check so non-admins always see unauthorized.
func (r *ResolveDisputeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.NewStatus) == "" {
		return dErrors.New(dErrors.CodeValidation, "new_status is required")
	}
	return nil
}

func (r *ResolveDisputeRequest) TargetStatus() models.RecallStatus {
	return models.RecallStatus(strings.TrimSpace(r.NewStatus))
}

// UpdateStatusRequest is the body for PUT /recalls/{recallID}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Status) == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

func (r *UpdateStatusRequest) TargetStatus() models.RecallStatus {
	return models.RecallStatus(strings.TrimSpace(r.Status))
}

// SetThresholdRequest is the body for PUT /admin/threshold.
type SetThresholdRequest struct {
	Threshold *uint64 `json:"threshold"`
}

func (r *SetThresholdRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Threshold == nil {
		return dErrors.New(dErrors.CodeValidation, "threshold is required")
	}
	return nil
}

// TransferOwnershipRequest is the body for PUT /admin/owner.
type TransferOwnershipRequest struct {
	NewAdmin string `json:"new_admin"`

	parsedAdmin id.Principal
}

func (r *TransferOwnershipRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.NewAdmin = strings.TrimSpace(r.NewAdmin)
	if r.NewAdmin == "" {
		return dErrors.New(dErrors.CodeValidation, "new_admin is required")
	}
	admin, err := id.ParsePrincipal(r.NewAdmin)
	if err != nil {
		return err
	}
	r.parsedAdmin = admin
	return nil
}

func (r *TransferOwnershipRequest) ParsedAdmin() id.Principal {
	return r.parsedAdmin
}

// RegisterBatchRequest is the body for POST /batches.
type RegisterBatchRequest struct {
	BatchID  string `json:"batch_id"`
	Metadata string `json:"metadata"`

	parsedBatchID id.BatchID
}

const maxBatchMetadataLength = 1024

func (r *RegisterBatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Metadata) > maxBatchMetadataLength {
		return dErrors.New(dErrors.CodeValidation, "metadata must be at most 1024 bytes")
	}
	batchID, err := id.ParseBatchID(r.BatchID)
	if err != nil {
		return err
	}
	r.parsedBatchID = batchID
	return nil
}

func (r *RegisterBatchRequest) ParsedBatchID() id.BatchID {
	return r.parsedBatchID
}
