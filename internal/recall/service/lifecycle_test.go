package service_test

import (
	"strings"

	"go.uber.org/mock/gomock"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

func (s *ServiceSuite) TestVerify() {
	recallID := s.initiate(s.batch)

	s.Run("records an advisory vote", func() {
		s.Require().NoError(s.service.Verify(s.ctx, recallID, true, verifier))

		vote, err := s.service.GetVote(s.ctx, recallID, verifier)
		s.Require().NoError(err)
		s.True(vote.Vote)
		s.Equal(uint64(2), vote.CastAtHeight)

		recall, err := s.service.GetRecall(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(models.StatusInitiated, recall.Status)
	})

	s.Run("second vote by same identity is already_recalled", func() {
		err := s.service.Verify(s.ctx, recallID, false, verifier)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRecalled))

		vote, err := s.service.GetVote(s.ctx, recallID, verifier)
		s.Require().NoError(err)
		s.True(vote.Vote, "vote is immutable")
	})

	s.Run("distinct identities vote independently", func() {
		s.Require().NoError(s.service.Verify(s.ctx, recallID, false, "county-inspector"))
		vote, err := s.service.GetVote(s.ctx, recallID, "county-inspector")
		s.Require().NoError(err)
		s.False(vote.Vote)
	})

	s.Run("unknown recall is invalid_batch", func() {
		err := s.service.Verify(s.ctx, 42, true, verifier)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidBatch))
	})

	s.Run("disputed recall no longer accepts votes", func() {
		s.Require().NoError(s.service.Dispute(s.ctx, recallID, "bad evidence", "distributor"))
		err := s.service.Verify(s.ctx, recallID, true, "late-voter")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})
}

func (s *ServiceSuite) TestDispute() {
	recallID := s.initiate(s.batch)

	s.Run("notes over bound is metadata_too_long", func() {
		err := s.service.Dispute(s.ctx, recallID, strings.Repeat("n", models.MaxNotesLength+1), "distributor")
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("opens a dispute and moves recall to Disputed", func() {
		s.Require().NoError(s.service.Dispute(s.ctx, recallID, "bad evidence", "distributor"))

		dispute, err := s.service.GetDispute(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(id.Principal("distributor"), dispute.Disputer)
		s.Equal("bad evidence", dispute.Notes)
		s.False(dispute.Resolved)

		recall, err := s.service.GetRecall(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(models.StatusDisputed, recall.Status)
	})

	s.Run("second dispute is dispute_exists", func() {
		err := s.service.Dispute(s.ctx, recallID, "again", "someone-else")
		s.True(dErrors.HasCode(err, dErrors.CodeDisputeExists))
	})

	s.Run("recall not initiated is invalid_status", func() {
		other := s.initiate(s.other)
		s.Require().NoError(s.service.UpdateStatus(s.ctx, other, models.StatusVerified, "confirmed", admin))
		err := s.service.Dispute(s.ctx, other, "late", "distributor")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("unknown recall is invalid_batch", func() {
		err := s.service.Dispute(s.ctx, 99, "x", "distributor")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidBatch))
	})
}

func (s *ServiceSuite) TestResolveDispute() {
	recallID := s.initiate(s.batch)

	s.Run("non-admin is unauthorized even without a dispute", func() {
		err := s.service.ResolveDispute(s.ctx, recallID, "x", models.StatusResolved, reporter)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing dispute is no_dispute", func() {
		err := s.service.ResolveDispute(s.ctx, recallID, "x", models.StatusResolved, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeNoDispute))
	})

	s.Require().NoError(s.service.Dispute(s.ctx, recallID, "bad evidence", "distributor"))

	s.Run("non-admin is unauthorized with a dispute", func() {
		err := s.service.ResolveDispute(s.ctx, recallID, "x", models.StatusResolved, "distributor")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("Disputed is not a valid outcome", func() {
		err := s.service.ResolveDispute(s.ctx, recallID, "x", models.StatusDisputed, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("resolves dispute and keeps the batch active", func() {
		s.Require().NoError(s.service.ResolveDispute(s.ctx, recallID, "upheld", models.StatusResolved, admin))

		dispute, err := s.service.GetDispute(s.ctx, recallID)
		s.Require().NoError(err)
		s.True(dispute.Resolved)
		s.Equal("upheld", *dispute.Resolution)

		recall, err := s.service.GetRecall(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(models.StatusResolved, recall.Status)
		s.Equal("upheld", *recall.ResolutionNotes)

		status, err := s.service.GetBatchStatus(s.ctx, s.batch)
		s.Require().NoError(err)
		s.True(status.ActiveRecall)
	})

	s.Run("already resolved dispute is invalid_status", func() {
		err := s.service.ResolveDispute(s.ctx, recallID, "again", models.StatusVerified, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})
}

func (s *ServiceSuite) TestUpdateStatus() {
	recallID := s.initiate(s.batch)

	s.Run("non-admin is unauthorized", func() {
		err := s.service.UpdateStatus(s.ctx, recallID, models.StatusResolved, "x", reporter)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("Initiated is not an admin target", func() {
		err := s.service.UpdateStatus(s.ctx, recallID, models.StatusInitiated, "x", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("unknown recall is invalid_batch", func() {
		err := s.service.UpdateStatus(s.ctx, 77, models.StatusVerified, "x", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidBatch))
	})

	s.Run("Verified and Disputed leave the batch active", func() {
		s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.StatusVerified, "lab", admin))
		s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.StatusDisputed, "reopened", admin))
		status, err := s.service.GetBatchStatus(s.ctx, s.batch)
		s.Require().NoError(err)
		s.True(status.ActiveRecall)
	})

	s.Run("Resolved clears the batch", func() {
		before := s.height()
		s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.StatusResolved, "closed", admin))

		status, err := s.service.GetBatchStatus(s.ctx, s.batch)
		s.Require().NoError(err)
		s.False(status.ActiveRecall)
		s.Equal(recallID, *status.RecallID)
		s.Equal(before, status.LastUpdatedAt)

		recall, err := s.service.GetRecall(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(models.StatusResolved, recall.Status)
		s.Equal("closed", *recall.ResolutionNotes)
	})

	s.Run("resolved recall can be reopened administratively", func() {
		s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.StatusDisputed, "new evidence", admin))
		recall, err := s.service.GetRecall(s.ctx, recallID)
		s.Require().NoError(err)
		s.Equal(models.StatusDisputed, recall.Status)
	})

	s.Run("closed batch accepts a new recall", func() {
		s.Equal(id.RecallID(2), s.initiate(s.batch))
	})

	s.Run("resolving a superseded recall keeps the newer one active", func() {
		s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.StatusResolved, "closed again", admin))

		status, err := s.service.GetBatchStatus(s.ctx, s.batch)
		s.Require().NoError(err)
		s.True(status.ActiveRecall)
		s.Equal(id.RecallID(2), *status.RecallID)

		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		_, err = s.service.Initiate(s.ctx, service.InitiateRequest{
			BatchID: s.batch,
			Reason:  "second outbreak",
			Caller:  reporter,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRecalled))
	})
}

func (s *ServiceSuite) TestStatusNamesParsedAfterAdminCheck() {
	recallID := s.initiate(s.batch)

	err := s.service.UpdateStatus(s.ctx, recallID, models.RecallStatus("closed"), "x", reporter)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	err = s.service.ResolveDispute(s.ctx, recallID, "x", models.RecallStatus("closed"), reporter)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = s.service.UpdateStatus(s.ctx, recallID, models.RecallStatus("closed"), "x", admin)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))

	s.Require().NoError(s.service.UpdateStatus(s.ctx, recallID, models.RecallStatus("resolved"), "x", admin))
	recall, err := s.service.GetRecall(s.ctx, recallID)
	s.Require().NoError(err)
	s.Equal(models.StatusResolved, recall.Status)
}
