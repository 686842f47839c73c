// Package ports declares the narrow capabilities the recall lifecycle manager
// consumes from collaborators. Implementations live in internal/recall/adapters.
package ports

import (
	"context"
	"time"

	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=../service/mocks/ports_mocks.go -package=mocks

// BatchDetails is the subset of batch registration data the core reads.
type BatchDetails struct {
	Owner     id.Principal
	Metadata  string
	CreatedAt time.Time
}

// BatchDirectory answers whether a batch is registered and who owns it.
type BatchDirectory interface {
	IsBatchRegistered(ctx context.Context, batchID id.BatchID) (bool, error)
	GetBatchDetails(ctx context.Context, batchID id.BatchID) (*BatchDetails, error)
}

// ReportTally counts independent contamination reports per batch.
type ReportTally interface {
	ReportCountForBatch(ctx context.Context, batchID id.BatchID) (uint64, error)
}

// Alert is the stakeholder notification sent when a recall opens.
type Alert struct {
	Caller   id.Principal `json:"caller"`
	Message  string       `json:"message"`
	BatchID  id.BatchID   `json:"batch_id"`
	RecallID id.RecallID  `json:"recall_id"`
}

// AlertDispatcher delivers an alert. A returned error aborts the operation.
type AlertDispatcher interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// RewardDispatcher credits a reporter from the reward pool.
type RewardDispatcher interface {
	RewardReporter(ctx context.Context, reporter id.Principal, amount uint64) error
}

// AuditPublisher records successful state changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
