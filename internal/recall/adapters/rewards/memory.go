// Package rewards credits reporters from the reward pool.
package rewards

import (
	"context"
	"errors"
	"sync"

	id "recallguard/pkg/domain"
)

var ErrInvalidCredit = errors.New("reward credit requires a reporter and a positive amount")

// InMemory tracks credited balances per reporter.
type InMemory struct {
	mu       sync.RWMutex
	balances map[id.Principal]uint64
}

func NewInMemory() *InMemory {
	return &InMemory{balances: make(map[id.Principal]uint64)}
}

func (l *InMemory) RewardReporter(_ context.Context, reporter id.Principal, amount uint64) error {
	if reporter.IsZero() || amount == 0 {
		return ErrInvalidCredit
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[reporter] += amount
	return nil
}

// Balance returns the total credited to reporter.
func (l *InMemory) Balance(reporter id.Principal) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[reporter]
}
