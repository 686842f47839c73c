// Package tally counts independent contamination reports per batch. A
// reporter counts once per batch no matter how often it reports.
package tally

import (
	"context"
	"sync"

	id "recallguard/pkg/domain"
)

type InMemory struct {
	mu      sync.RWMutex
	reports map[id.BatchID]map[id.Principal]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{reports: make(map[id.BatchID]map[id.Principal]struct{})}
}

// RecordReport adds reporter to the batch's reporters and returns the new count.
func (t *InMemory) RecordReport(_ context.Context, batchID id.BatchID, reporter id.Principal) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.reports[batchID]
	if !ok {
		set = make(map[id.Principal]struct{})
		t.reports[batchID] = set
	}
	set[reporter] = struct{}{}
	return uint64(len(set)), nil
}

func (t *InMemory) ReportCountForBatch(_ context.Context, batchID id.BatchID) (uint64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return uint64(len(t.reports[batchID])), nil
}
