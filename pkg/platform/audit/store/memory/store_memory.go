package memory

import (
	"context"
	"sync"

	id "recallguard/pkg/domain"
	audit "recallguard/pkg/platform/audit"
)

// InMemoryStore keeps audit events grouped by recall. Events that do not
// concern a single recall (threshold, pause, ownership) are filed under zero.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.RecallID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.RecallID][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.RecallID][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.RecallID] = append(s.events[event.RecallID], event)
	return nil
}

func (s *InMemoryStore) ListByRecall(_ context.Context, recallID id.RecallID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[recallID]...), nil
}

// ListAll returns every event across all recalls.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []audit.Event
	for _, events := range s.events {
		all = append(all, events...)
	}
	return all, nil
}
