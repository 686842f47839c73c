package service

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/audit"
)

// SetThreshold changes the number of reports required to open a recall.
func (s *Service) SetThreshold(ctx context.Context, threshold uint64, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "SetThreshold", attribute.Int64("recall.threshold", int64(threshold)))
	defer func() { finish(err) }()

	err = s.updateSettings(ctx, caller, func(settings *models.Settings) error {
		if err := models.ValidateThreshold(threshold); err != nil {
			return err
		}
		settings.Threshold = threshold
		return nil
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, audit.EventThresholdUpdated, caller, 0, "", strconv.FormatUint(threshold, 10))
	return nil
}

// Pause blocks new recall initiations. Other operations are unaffected.
func (s *Service) Pause(ctx context.Context, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "Pause")
	defer func() { finish(err) }()

	err = s.updateSettings(ctx, caller, func(settings *models.Settings) error {
		settings.Paused = true
		return nil
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, audit.EventContractPaused, caller, 0, "", "")
	return nil
}

func (s *Service) Unpause(ctx context.Context, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "Unpause")
	defer func() { finish(err) }()

	err = s.updateSettings(ctx, caller, func(settings *models.Settings) error {
		settings.Paused = false
		return nil
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, audit.EventContractUnpaused, caller, 0, "", "")
	return nil
}

// TransferOwnership replaces the administrator immediately. There is no
// acceptance step.
func (s *Service) TransferOwnership(ctx context.Context, newAdmin id.Principal, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "TransferOwnership", attribute.String("recall.new_admin", newAdmin.String()))
	defer func() { finish(err) }()

	err = s.updateSettings(ctx, caller, func(settings *models.Settings) error {
		if newAdmin.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "new administrator is required")
		}
		settings.Admin = newAdmin
		return nil
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, audit.EventOwnershipTransferred, caller, 0, "", newAdmin.String())
	return nil
}

// updateSettings runs an administrator-only mutation of the configuration
// scalars and advances the ledger height.
func (s *Service) updateSettings(ctx context.Context, caller id.Principal, mutate func(settings *models.Settings) error) error {
	return s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := requireAdmin(ctx, store, caller)
		if err != nil {
			return err
		}
		if err := mutate(settings); err != nil {
			return err
		}
		return advance(ctx, store, settings)
	})
}
