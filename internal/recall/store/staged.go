package store

import (
	"context"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/sentinel"
)

// stagedStore buffers writes on top of an InMemoryStore. Reads see staged
// writes first. Nothing reaches the base store until commit.
type stagedStore struct {
	base     *InMemoryStore
	settings *models.Settings
	recalls  map[id.RecallID]*models.Recall
	batches  map[id.BatchID]*models.BatchRecallStatus
	disputes map[id.RecallID]*models.Dispute
	votes    map[voteKey]*models.VerifierVote
	metadata map[id.RecallID]*models.RecallMetadata
}

func newStagedStore(base *InMemoryStore) *stagedStore {
	return &stagedStore{
		base:     base,
		recalls:  make(map[id.RecallID]*models.Recall),
		batches:  make(map[id.BatchID]*models.BatchRecallStatus),
		disputes: make(map[id.RecallID]*models.Dispute),
		votes:    make(map[voteKey]*models.VerifierVote),
		metadata: make(map[id.RecallID]*models.RecallMetadata),
	}
}

func (t *stagedStore) LoadSettings(ctx context.Context) (*models.Settings, error) {
	if t.settings != nil {
		return t.settings.Clone(), nil
	}
	return t.base.LoadSettings(ctx)
}

func (t *stagedStore) SaveSettings(_ context.Context, settings *models.Settings) error {
	t.settings = settings.Clone()
	return nil
}

func (t *stagedStore) FindRecall(ctx context.Context, recallID id.RecallID) (*models.Recall, error) {
	if r, ok := t.recalls[recallID]; ok {
		return cloneRecall(r), nil
	}
	return t.base.FindRecall(ctx, recallID)
}

func (t *stagedStore) SaveRecall(_ context.Context, recall *models.Recall) error {
	t.recalls[recall.ID] = cloneRecall(recall)
	return nil
}

func (t *stagedStore) FindBatchStatus(ctx context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error) {
	if b, ok := t.batches[batchID]; ok {
		return cloneBatchStatus(b), nil
	}
	return t.base.FindBatchStatus(ctx, batchID)
}

func (t *stagedStore) SaveBatchStatus(_ context.Context, status *models.BatchRecallStatus) error {
	t.batches[status.BatchID] = cloneBatchStatus(status)
	return nil
}

func (t *stagedStore) FindDispute(ctx context.Context, recallID id.RecallID) (*models.Dispute, error) {
	if d, ok := t.disputes[recallID]; ok {
		return cloneDispute(d), nil
	}
	return t.base.FindDispute(ctx, recallID)
}

func (t *stagedStore) SaveDispute(_ context.Context, dispute *models.Dispute) error {
	t.disputes[dispute.RecallID] = cloneDispute(dispute)
	return nil
}

func (t *stagedStore) FindVote(ctx context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error) {
	if v, ok := t.votes[voteKey{recallID, voter}]; ok {
		return cloneVote(v), nil
	}
	return t.base.FindVote(ctx, recallID, voter)
}

func (t *stagedStore) SaveVote(ctx context.Context, vote *models.VerifierVote) error {
	if _, err := t.FindVote(ctx, vote.RecallID, vote.Voter); err == nil {
		return sentinel.ErrConflict
	}
	t.votes[voteKey{vote.RecallID, vote.Voter}] = cloneVote(vote)
	return nil
}

func (t *stagedStore) FindMetadata(ctx context.Context, recallID id.RecallID) (*models.RecallMetadata, error) {
	if m, ok := t.metadata[recallID]; ok {
		return cloneMetadata(m), nil
	}
	return t.base.FindMetadata(ctx, recallID)
}

func (t *stagedStore) SaveMetadata(ctx context.Context, metadata *models.RecallMetadata) error {
	if _, err := t.FindMetadata(ctx, metadata.RecallID); err == nil {
		return sentinel.ErrConflict
	}
	t.metadata[metadata.RecallID] = cloneMetadata(metadata)
	return nil
}

// commit applies every staged write under a single base lock.
func (t *stagedStore) commit() error {
	b := t.base
	b.mu.Lock()
	defer b.mu.Unlock()

	if t.settings != nil {
		b.settings = t.settings
	}
	for k, v := range t.recalls {
		b.recalls[k] = v
	}
	for k, v := range t.batches {
		b.batches[k] = v
	}
	for k, v := range t.disputes {
		b.disputes[k] = v
	}
	for k, v := range t.votes {
		b.votes[k] = v
	}
	for k, v := range t.metadata {
		b.metadata[k] = v
	}
	return nil
}
