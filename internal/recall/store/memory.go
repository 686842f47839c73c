package store

import (
	"context"
	"sync"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/sentinel"
)

type voteKey struct {
	recallID id.RecallID
	voter    id.Principal
}

// InMemoryStore keeps the five recall record sets and the settings in maps.
// Transactions are serialized and stage their writes in an overlay that is
// applied on commit and dropped on error.
type InMemoryStore struct {
	mu       sync.RWMutex
	settings *models.Settings
	recalls  map[id.RecallID]*models.Recall
	batches  map[id.BatchID]*models.BatchRecallStatus
	disputes map[id.RecallID]*models.Dispute
	votes    map[voteKey]*models.VerifierVote
	metadata map[id.RecallID]*models.RecallMetadata

	// writer serializes transactions so the ledger sees a single total order.
	writer sync.Mutex
}

// NewInMemory creates a store seeded with the initial settings.
func NewInMemory(settings *models.Settings) *InMemoryStore {
	return &InMemoryStore{
		settings: settings.Clone(),
		recalls:  make(map[id.RecallID]*models.Recall),
		batches:  make(map[id.BatchID]*models.BatchRecallStatus),
		disputes: make(map[id.RecallID]*models.Dispute),
		votes:    make(map[voteKey]*models.VerifierVote),
		metadata: make(map[id.RecallID]*models.RecallMetadata),
	}
}

func (s *InMemoryStore) LoadSettings(_ context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone(), nil
}

func (s *InMemoryStore) SaveSettings(_ context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Clone()
	return nil
}

func (s *InMemoryStore) FindRecall(_ context.Context, recallID id.RecallID) (*models.Recall, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.recalls[recallID]; ok {
		return cloneRecall(r), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) SaveRecall(_ context.Context, recall *models.Recall) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalls[recall.ID] = cloneRecall(recall)
	return nil
}

func (s *InMemoryStore) FindBatchStatus(_ context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.batches[batchID]; ok {
		return cloneBatchStatus(b), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) SaveBatchStatus(_ context.Context, status *models.BatchRecallStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[status.BatchID] = cloneBatchStatus(status)
	return nil
}

func (s *InMemoryStore) FindDispute(_ context.Context, recallID id.RecallID) (*models.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.disputes[recallID]; ok {
		return cloneDispute(d), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) SaveDispute(_ context.Context, dispute *models.Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disputes[dispute.RecallID] = cloneDispute(dispute)
	return nil
}

func (s *InMemoryStore) FindVote(_ context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.votes[voteKey{recallID, voter}]; ok {
		return cloneVote(v), nil
	}
	return nil, sentinel.ErrNotFound
}

// SaveVote is write-once per (recall, voter).
func (s *InMemoryStore) SaveVote(_ context.Context, vote *models.VerifierVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voteKey{vote.RecallID, vote.Voter}
	if _, exists := s.votes[key]; exists {
		return sentinel.ErrConflict
	}
	s.votes[key] = cloneVote(vote)
	return nil
}

func (s *InMemoryStore) FindMetadata(_ context.Context, recallID id.RecallID) (*models.RecallMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.metadata[recallID]; ok {
		return cloneMetadata(m), nil
	}
	return nil, sentinel.ErrNotFound
}

// SaveMetadata is write-once per recall.
func (s *InMemoryStore) SaveMetadata(_ context.Context, metadata *models.RecallMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.metadata[metadata.RecallID]; exists {
		return sentinel.ErrConflict
	}
	s.metadata[metadata.RecallID] = cloneMetadata(metadata)
	return nil
}

// RunInTx runs fn against a staged view of the store. Staged writes are
// applied atomically when fn returns nil. No deadline is added; only the
// caller's context can abort a transaction.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	s.writer.Lock()
	defer s.writer.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	staged := newStagedStore(s)
	if err := fn(ctx, staged); err != nil {
		return err
	}
	return staged.commit()
}

var (
	_ service.Store   = (*InMemoryStore)(nil)
	_ service.StoreTx = (*InMemoryStore)(nil)
	_ service.Store   = (*stagedStore)(nil)
)
