package service

import (
	"context"
	"errors"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/sentinel"
)

// Queries return nil for unknown keys. An error means the store itself failed.

func (s *Service) GetRecall(ctx context.Context, recallID id.RecallID) (*models.Recall, error) {
	return lookup(s.store.FindRecall(ctx, recallID))
}

func (s *Service) GetBatchStatus(ctx context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error) {
	return lookup(s.store.FindBatchStatus(ctx, batchID))
}

func (s *Service) GetDispute(ctx context.Context, recallID id.RecallID) (*models.Dispute, error) {
	return lookup(s.store.FindDispute(ctx, recallID))
}

func (s *Service) GetVote(ctx context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error) {
	return lookup(s.store.FindVote(ctx, recallID, voter))
}

func (s *Service) GetMetadata(ctx context.Context, recallID id.RecallID) (*models.RecallMetadata, error) {
	return lookup(s.store.FindMetadata(ctx, recallID))
}

// Threshold returns the current reporting threshold.
func (s *Service) Threshold(ctx context.Context) (uint64, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.Threshold, nil
}

// Owner returns the current administrator.
func (s *Service) Owner(ctx context.Context) (id.Principal, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.Admin, nil
}

func (s *Service) IsPaused(ctx context.Context) (bool, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.Paused, nil
}

// RecallCounter returns the last issued recall id, zero before the first recall.
func (s *Service) RecallCounter(ctx context.Context) (uint64, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.RecallCounter, nil
}

// LedgerHeight returns the height the next state change will be stamped with.
func (s *Service) LedgerHeight(ctx context.Context) (uint64, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.Height, nil
}

// Settings returns one consistent snapshot of the configuration scalars and
// the ledger height.
func (s *Service) Settings(ctx context.Context) (*models.Settings, error) {
	return s.loadSettings(ctx)
}

func (s *Service) loadSettings(ctx context.Context) (*models.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
	}
	return settings, nil
}

func lookup[T any](v *T, err error) (*T, error) {
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read recall state")
	}
	return v, nil
}
