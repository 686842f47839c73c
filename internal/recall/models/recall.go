package models

import (
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

const (
	MaxMetadataLength  = 512
	MaxNotesLength     = 256
	MaxReasonLength    = 256
	MaxLinkedReports   = 10
	MaxReportIDLength  = 64
	MinThreshold       = 3
	DefaultThreshold   = 3
	DefaultRecallTTL   = 1440
	InitiatorReward    = 100
	FirstLedgerHeight  = 1
	FirstRecallCounter = 0
)

// Recall is the record opened for a batch once enough reports exist.
//
// Invariants:
//   - ID is assigned from Settings.RecallCounter and never reused
//   - Reason is non-empty and at most MaxReasonLength bytes
//   - ExpiresAtHeight = CreatedAtHeight + DefaultRecallTTL
//   - AffectedCount is stored for compatibility and is never incremented
type Recall struct {
	ID              id.RecallID  `json:"id"`
	BatchID         id.BatchID   `json:"batch_id"`
	Initiator       id.Principal `json:"initiator"`
	CreatedAtHeight uint64       `json:"created_at_height"`
	Status          RecallStatus `json:"status"`
	Reason          string       `json:"reason"`
	AffectedCount   uint64       `json:"affected_count"`
	ResolutionNotes *string      `json:"resolution_notes,omitempty"`
	ExpiresAtHeight uint64       `json:"expires_at_height"`
}

// NewRecall constructs a recall in the Initiated state at the given height.
func NewRecall(recallID id.RecallID, batchID id.BatchID, initiator id.Principal, reason string, height uint64) (*Recall, error) {
	if err := ValidateReason(reason); err != nil {
		return nil, err
	}
	if batchID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "batch id cannot be zero")
	}
	if initiator.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "initiator cannot be empty")
	}
	return &Recall{
		ID:              recallID,
		BatchID:         batchID,
		Initiator:       initiator,
		CreatedAtHeight: height,
		Status:          StatusInitiated,
		Reason:          reason,
		ExpiresAtHeight: height + DefaultRecallTTL,
	}, nil
}

// CanDispute checks that the recall is still open for a dispute.
func (r *Recall) CanDispute() error {
	if r.Status != StatusInitiated {
		return dErrors.New(dErrors.CodeInvalidStatus, "only initiated recalls can be disputed")
	}
	return nil
}

// CanVote checks that the recall still accepts verifier votes.
func (r *Recall) CanVote() error {
	if r.Status != StatusInitiated {
		return dErrors.New(dErrors.CodeInvalidStatus, "only initiated recalls accept votes")
	}
	return nil
}

// ApplyStatus overwrites the status and resolution notes.
func (r *Recall) ApplyStatus(status RecallStatus, notes string) {
	r.Status = status
	r.ResolutionNotes = &notes
}

// BatchRecallStatus tracks whether a batch currently has an open recall.
type BatchRecallStatus struct {
	BatchID       id.BatchID   `json:"batch_id"`
	ActiveRecall  bool         `json:"active_recall"`
	RecallID      *id.RecallID `json:"recall_id,omitempty"`
	LastUpdatedAt uint64       `json:"last_updated_height"`
}

// Dispute is the single challenge allowed against a recall.
type Dispute struct {
	RecallID        id.RecallID  `json:"recall_id"`
	Disputer        id.Principal `json:"disputer"`
	Notes           string       `json:"notes"`
	CreatedAtHeight uint64       `json:"created_at_height"`
	Resolved        bool         `json:"resolved"`
	Resolution      *string      `json:"resolution,omitempty"`
}

// CanResolve checks that the dispute is still open.
func (d *Dispute) CanResolve() error {
	if d.Resolved {
		return dErrors.New(dErrors.CodeInvalidStatus, "dispute already resolved")
	}
	return nil
}

// ApplyResolution closes the dispute with the given text.
func (d *Dispute) ApplyResolution(text string) {
	d.Resolved = true
	d.Resolution = &text
}

// VerifierVote is write-once per (recall, voter).
type VerifierVote struct {
	RecallID     id.RecallID  `json:"recall_id"`
	Voter        id.Principal `json:"voter"`
	Vote         bool         `json:"vote"`
	CastAtHeight uint64       `json:"cast_at_height"`
}

// RecallMetadata is set once at initiation.
type RecallMetadata struct {
	RecallID        id.RecallID `json:"recall_id"`
	Payload         []byte      `json:"payload"`
	LinkedReportIDs []string    `json:"linked_report_ids"`
}
