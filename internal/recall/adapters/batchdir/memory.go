// Package batchdir provides batch directory collaborators: which batches are
// registered and who owns them.
package batchdir

import (
	"context"
	"sync"
	"time"

	"recallguard/internal/recall/ports"
	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/sentinel"
)

// InMemory is a batch directory backed by a map.
type InMemory struct {
	mu      sync.RWMutex
	batches map[id.BatchID]ports.BatchDetails
}

func NewInMemory() *InMemory {
	return &InMemory{batches: make(map[id.BatchID]ports.BatchDetails)}
}

// Register adds a batch. Registering the same batch twice is a conflict.
func (d *InMemory) Register(_ context.Context, batchID id.BatchID, owner id.Principal, metadata string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.batches[batchID]; exists {
		return sentinel.ErrConflict
	}
	d.batches[batchID] = ports.BatchDetails{Owner: owner, Metadata: metadata, CreatedAt: time.Now().UTC()}
	return nil
}

func (d *InMemory) IsBatchRegistered(_ context.Context, batchID id.BatchID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.batches[batchID]
	return ok, nil
}

func (d *InMemory) GetBatchDetails(_ context.Context, batchID id.BatchID) (*ports.BatchDetails, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	details, ok := d.batches[batchID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &details, nil
}
