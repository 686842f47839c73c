package audit

import (
	"context"
	"time"

	id "recallguard/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: recalls
	// opened, closed or disputed.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers changes to who may administer the system and
	// whether initiation is halted.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine bookkeeping such as verifier votes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Actor     id.Principal
	Action    string
	RecallID  id.RecallID
	BatchID   string
	// Detail holds the operation-specific value: the new status, the vote,
	// the new threshold or the new administrator.
	Detail    string
	RequestID string
}

type AuditEvent string

const (
	EventRecallInitiated      AuditEvent = "recall_initiated"
	EventVoteRecorded         AuditEvent = "recall_vote_recorded"
	EventRecallDisputed       AuditEvent = "recall_disputed"
	EventDisputeResolved      AuditEvent = "dispute_resolved"
	EventRecallStatusUpdated  AuditEvent = "recall_status_updated"
	EventThresholdUpdated     AuditEvent = "threshold_updated"
	EventContractPaused       AuditEvent = "contract_paused"
	EventContractUnpaused     AuditEvent = "contract_unpaused"
	EventOwnershipTransferred AuditEvent = "ownership_transferred"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRecallInitiated:     CategoryCompliance,
	EventRecallDisputed:      CategoryCompliance,
	EventDisputeResolved:     CategoryCompliance,
	EventRecallStatusUpdated: CategoryCompliance,

	EventContractPaused:       CategorySecurity,
	EventContractUnpaused:     CategorySecurity,
	EventOwnershipTransferred: CategorySecurity,
	EventThresholdUpdated:     CategorySecurity,

	EventVoteRecorded: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRecall(ctx context.Context, recallID id.RecallID) ([]Event, error)
}
