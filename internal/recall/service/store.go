package service

import (
	"context"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mocks.go -package=mocks

// Store is the keyed persistence the lifecycle manager needs. Finders return
// sentinel.ErrNotFound for unknown keys.
type Store interface {
	LoadSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, settings *models.Settings) error

	FindRecall(ctx context.Context, recallID id.RecallID) (*models.Recall, error)
	SaveRecall(ctx context.Context, recall *models.Recall) error

	FindBatchStatus(ctx context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error)
	SaveBatchStatus(ctx context.Context, status *models.BatchRecallStatus) error

	FindDispute(ctx context.Context, recallID id.RecallID) (*models.Dispute, error)
	SaveDispute(ctx context.Context, dispute *models.Dispute) error

	FindVote(ctx context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error)
	SaveVote(ctx context.Context, vote *models.VerifierVote) error

	FindMetadata(ctx context.Context, recallID id.RecallID) (*models.RecallMetadata, error)
	SaveMetadata(ctx context.Context, metadata *models.RecallMetadata) error
}

// StoreTx is the atomic unit of work. Writes made through the Store passed to
// fn become visible only if fn returns nil. fn receives the transaction-scoped
// context; collaborators called with it may join the same transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
