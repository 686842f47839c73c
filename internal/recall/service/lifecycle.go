package service

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/ports"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/audit"
	"recallguard/pkg/platform/sentinel"
)

// InitiateRequest carries the inputs for opening a recall.
type InitiateRequest struct {
	BatchID         id.BatchID
	Reason          string
	LinkedReportIDs []string
	Payload         []byte
	Caller          id.Principal
}

// Initiate opens a recall for a batch whose report count has reached the
// threshold. Preconditions are checked in order: not paused, batch registered,
// no active recall, enough reports, metadata within bounds. The alert and the
// initiator reward are part of the same unit of work; if either fails nothing
// is committed.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (_ id.RecallID, err error) {
	ctx, finish := s.startOperation(ctx, "Initiate",
		attribute.String("recall.batch_id", req.BatchID.String()),
		attribute.String("recall.caller", req.Caller.String()),
	)
	defer func() { finish(err) }()

	if err := requireCaller(req.Caller); err != nil {
		return 0, err
	}

	var recallID id.RecallID
	err = s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := store.LoadSettings(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
		}
		if settings.Paused {
			return dErrors.New(dErrors.CodePaused, "recall initiation is paused")
		}

		registered, err := s.batches.IsBatchRegistered(ctx, req.BatchID)
		if err != nil {
			return s.dependencyFailure(ctx, depBatchDirectory, err)
		}
		if !registered {
			return dErrors.New(dErrors.CodeInvalidBatch, "batch is not registered")
		}

		existing, err := store.FindBatchStatus(ctx, req.BatchID)
		switch {
		case err == nil && existing.ActiveRecall:
			return dErrors.New(dErrors.CodeAlreadyRecalled, "batch already has an active recall")
		case err != nil && !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load batch recall status")
		}

		count, err := s.reports.ReportCountForBatch(ctx, req.BatchID)
		if err != nil {
			return s.dependencyFailure(ctx, depReportTally, err)
		}
		if count < settings.Threshold {
			return dErrors.New(dErrors.CodeInsufficientReports,
				"batch has "+strconv.FormatUint(count, 10)+" reports, threshold is "+strconv.FormatUint(settings.Threshold, 10))
		}

		if err := models.ValidatePayload(req.Payload); err != nil {
			return err
		}
		linked, err := models.NormalizeReportIDs(req.LinkedReportIDs)
		if err != nil {
			return err
		}

		height := settings.Height
		newID := settings.NextRecallID()
		recall, err := models.NewRecall(newID, req.BatchID, req.Caller, req.Reason, height)
		if err != nil {
			return err
		}
		if err := store.SaveRecall(ctx, recall); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recall")
		}
		if err := store.SaveBatchStatus(ctx, &models.BatchRecallStatus{
			BatchID:       req.BatchID,
			ActiveRecall:  true,
			RecallID:      &newID,
			LastUpdatedAt: height,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save batch recall status")
		}
		if err := store.SaveMetadata(ctx, &models.RecallMetadata{
			RecallID:        newID,
			Payload:         append([]byte(nil), req.Payload...),
			LinkedReportIDs: linked,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recall metadata")
		}

		details, err := s.batches.GetBatchDetails(ctx, req.BatchID)
		if err != nil {
			return s.dependencyFailure(ctx, depBatchDirectory, err)
		}
		var owner id.Principal
		if details != nil {
			owner = details.Owner
		}
		if err := s.alerts.SendAlert(ctx, ports.Alert{
			Caller:   req.Caller,
			Message:  alertMessage(newID, req.BatchID, owner, recall.Reason),
			BatchID:  req.BatchID,
			RecallID: newID,
		}); err != nil {
			return s.dependencyFailure(ctx, depAlerts, err)
		}
		if err := s.rewards.RewardReporter(ctx, req.Caller, models.InitiatorReward); err != nil {
			return s.dependencyFailure(ctx, depRewards, err)
		}

		settings.Advance()
		if err := store.SaveSettings(ctx, settings); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
		}
		recallID = newID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.IncrementInitiated()
	s.metrics.IncrementTransition(string(models.StatusInitiated))
	s.emitAudit(ctx, audit.EventRecallInitiated, req.Caller, recallID, req.BatchID.String(), string(models.StatusInitiated))
	return recallID, nil
}

// Verify records a verifier vote. Votes are advisory and never change the
// recall status.
func (s *Service) Verify(ctx context.Context, recallID id.RecallID, approve bool, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "Verify",
		attribute.Int64("recall.id", int64(recallID)),
		attribute.String("recall.caller", caller.String()),
	)
	defer func() { finish(err) }()

	if err := requireCaller(caller); err != nil {
		return err
	}

	var batchID id.BatchID
	err = s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := store.LoadSettings(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
		}
		recall, err := store.FindRecall(ctx, recallID)
		if err != nil {
			return notFoundAs(err, dErrors.CodeInvalidBatch, "recall not found")
		}
		if err := recall.CanVote(); err != nil {
			return err
		}
		_, err = store.FindVote(ctx, recallID, caller)
		switch {
		case err == nil:
			return dErrors.New(dErrors.CodeAlreadyRecalled, "caller already voted on this recall")
		case !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verifier vote")
		}
		if err := store.SaveVote(ctx, &models.VerifierVote{
			RecallID:     recallID,
			Voter:        caller,
			Vote:         approve,
			CastAtHeight: settings.Height,
		}); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyRecalled, "caller already voted on this recall")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save verifier vote")
		}
		batchID = recall.BatchID
		return advance(ctx, store, settings)
	})
	if err != nil {
		return err
	}

	s.metrics.IncrementVote(approve)
	s.emitAudit(ctx, audit.EventVoteRecorded, caller, recallID, batchID.String(), strconv.FormatBool(approve))
	return nil
}

// Dispute challenges an initiated recall. At most one dispute may exist, and
// an existing dispute is reported ahead of the status check.
func (s *Service) Dispute(ctx context.Context, recallID id.RecallID, notes string, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "Dispute",
		attribute.Int64("recall.id", int64(recallID)),
		attribute.String("recall.caller", caller.String()),
	)
	defer func() { finish(err) }()

	if err := requireCaller(caller); err != nil {
		return err
	}

	var batchID id.BatchID
	err = s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := store.LoadSettings(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load settings")
		}
		recall, err := store.FindRecall(ctx, recallID)
		if err != nil {
			return notFoundAs(err, dErrors.CodeInvalidBatch, "recall not found")
		}
		_, err = store.FindDispute(ctx, recallID)
		switch {
		case err == nil:
			return dErrors.New(dErrors.CodeDisputeExists, "recall already disputed")
		case !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dispute")
		}
		if err := recall.CanDispute(); err != nil {
			return err
		}
		if err := models.ValidateNotes(notes); err != nil {
			return err
		}

		if err := store.SaveDispute(ctx, &models.Dispute{
			RecallID:        recallID,
			Disputer:        caller,
			Notes:           notes,
			CreatedAtHeight: settings.Height,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dispute")
		}
		recall.Status = models.StatusDisputed
		if err := store.SaveRecall(ctx, recall); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recall")
		}
		batchID = recall.BatchID
		return advance(ctx, store, settings)
	})
	if err != nil {
		return err
	}

	s.metrics.IncrementDispute("opened")
	s.metrics.IncrementTransition(string(models.StatusDisputed))
	s.emitAudit(ctx, audit.EventRecallDisputed, caller, recallID, batchID.String(), string(models.StatusDisputed))
	return nil
}

// ResolveDispute closes an open dispute with Verified or Resolved. The status
// name is parsed only after the admin check. The batch keeps its active
// recall; only UpdateStatus to Resolved releases it.
func (s *Service) ResolveDispute(ctx context.Context, recallID id.RecallID, resolution string, newStatus models.RecallStatus, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "ResolveDispute",
		attribute.Int64("recall.id", int64(recallID)),
		attribute.String("recall.status", string(newStatus)),
	)
	defer func() { finish(err) }()

	var batchID id.BatchID
	err = s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := requireAdmin(ctx, store, caller)
		if err != nil {
			return err
		}
		if newStatus, err = models.ParseRecallStatus(string(newStatus)); err != nil {
			return err
		}
		dispute, err := store.FindDispute(ctx, recallID)
		if err != nil {
			return notFoundAs(err, dErrors.CodeNoDispute, "no dispute for recall")
		}
		if err := dispute.CanResolve(); err != nil {
			return err
		}
		recall, err := store.FindRecall(ctx, recallID)
		if err != nil {
			return notFoundAs(err, dErrors.CodeInvalidBatch, "recall not found")
		}
		if !newStatus.IsDisputeOutcome() {
			return dErrors.New(dErrors.CodeInvalidStatus, "dispute can only resolve to Verified or Resolved")
		}
		if err := models.ValidateNotes(resolution); err != nil {
			return err
		}

		dispute.ApplyResolution(resolution)
		if err := store.SaveDispute(ctx, dispute); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save dispute")
		}
		recall.ApplyStatus(newStatus, resolution)
		if err := store.SaveRecall(ctx, recall); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recall")
		}
		batchID = recall.BatchID
		return advance(ctx, store, settings)
	})
	if err != nil {
		return err
	}

	s.metrics.IncrementDispute(string(newStatus))
	s.metrics.IncrementTransition(string(newStatus))
	s.emitAudit(ctx, audit.EventDisputeResolved, caller, recallID, batchID.String(), string(newStatus))
	return nil
}

// UpdateStatus is the administrative override. It does not enforce transition
// order; moving to Resolved clears the batch's active recall.
func (s *Service) UpdateStatus(ctx context.Context, recallID id.RecallID, newStatus models.RecallStatus, notes string, caller id.Principal) (err error) {
	ctx, finish := s.startOperation(ctx, "UpdateStatus",
		attribute.Int64("recall.id", int64(recallID)),
		attribute.String("recall.status", string(newStatus)),
	)
	defer func() { finish(err) }()

	var batchID id.BatchID
	err = s.runInTx(ctx, func(ctx context.Context, store Store) error {
		settings, err := requireAdmin(ctx, store, caller)
		if err != nil {
			return err
		}
		if newStatus, err = models.ParseRecallStatus(string(newStatus)); err != nil {
			return err
		}
		recall, err := store.FindRecall(ctx, recallID)
		if err != nil {
			return notFoundAs(err, dErrors.CodeInvalidBatch, "recall not found")
		}
		if !newStatus.IsAdminTarget() {
			return dErrors.New(dErrors.CodeInvalidStatus, "status must be Verified, Resolved or Disputed")
		}
		if err := models.ValidateNotes(notes); err != nil {
			return err
		}

		recall.ApplyStatus(newStatus, notes)
		if err := store.SaveRecall(ctx, recall); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recall")
		}
		if newStatus == models.StatusResolved {
			if err := closeBatch(ctx, store, recall, settings.Height); err != nil {
				return err
			}
		}
		batchID = recall.BatchID
		return advance(ctx, store, settings)
	})
	if err != nil {
		return err
	}

	s.metrics.IncrementTransition(string(newStatus))
	s.emitAudit(ctx, audit.EventRecallStatusUpdated, caller, recallID, batchID.String(), string(newStatus))
	return nil
}

// closeBatch marks the batch as free for a new recall. A batch that has
// moved on to a newer recall is left untouched.
func closeBatch(ctx context.Context, store Store, recall *models.Recall, height uint64) error {
	status, err := store.FindBatchStatus(ctx, recall.BatchID)
	if errors.Is(err, sentinel.ErrNotFound) {
		rid := recall.ID
		status = &models.BatchRecallStatus{BatchID: recall.BatchID, RecallID: &rid}
	} else if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load batch recall status")
	}
	if status.RecallID != nil && *status.RecallID != recall.ID {
		return nil
	}
	status.ActiveRecall = false
	status.LastUpdatedAt = height
	if err := store.SaveBatchStatus(ctx, status); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save batch recall status")
	}
	return nil
}

// advance moves the ledger height forward as the last write of an operation.
func advance(ctx context.Context, store Store, settings *models.Settings) error {
	settings.Advance()
	if err := store.SaveSettings(ctx, settings); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
	}
	return nil
}
