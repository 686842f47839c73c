package service_test

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/mock/gomock"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/ports"
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

func (s *ServiceSuite) TestInitiateSuccess() {
	var sent ports.Alert
	s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
	s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(4), nil)
	s.batches.EXPECT().GetBatchDetails(gomock.Any(), s.batch).Return(&ports.BatchDetails{Owner: "grower-co"}, nil)
	s.alerts.EXPECT().SendAlert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert ports.Alert) error {
			sent = alert
			return nil
		})
	s.rewards.EXPECT().RewardReporter(gomock.Any(), reporter, uint64(100)).Return(nil)

	recallID, err := s.service.Initiate(s.ctx, service.InitiateRequest{
		BatchID:         s.batch,
		Reason:          "salmonella detected",
		LinkedReportIDs: []string{" rep-1", "rep-2", "rep-1"},
		Payload:         []byte("lot 42"),
		Caller:          reporter,
	})
	s.Require().NoError(err)
	s.Equal(id.RecallID(1), recallID)

	recall, err := s.service.GetRecall(s.ctx, recallID)
	s.Require().NoError(err)
	s.Equal(models.StatusInitiated, recall.Status)
	s.Equal(reporter, recall.Initiator)
	s.Equal(uint64(1), recall.CreatedAtHeight)
	s.Equal(uint64(1+1440), recall.ExpiresAtHeight)
	s.Zero(recall.AffectedCount)

	status, err := s.service.GetBatchStatus(s.ctx, s.batch)
	s.Require().NoError(err)
	s.True(status.ActiveRecall)
	s.Equal(recallID, *status.RecallID)

	meta, err := s.service.GetMetadata(s.ctx, recallID)
	s.Require().NoError(err)
	s.Equal([]byte("lot 42"), meta.Payload)
	s.Equal([]string{"rep-1", "rep-2"}, meta.LinkedReportIDs)

	s.Equal(recallID, sent.RecallID)
	s.Equal(s.batch, sent.BatchID)
	s.Equal(reporter, sent.Caller)
	s.Contains(sent.Message, "grower-co")

	counter, err := s.service.RecallCounter(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), counter)
	s.Equal(uint64(2), s.height())
}

func (s *ServiceSuite) TestInitiateAssignsSequentialIDs() {
	s.Equal(id.RecallID(1), s.initiate(s.batch))
	s.Equal(id.RecallID(2), s.initiate(s.other))

	second, err := s.service.GetRecall(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(uint64(2), second.CreatedAtHeight)
}

func (s *ServiceSuite) TestInitiatePreconditions() {
	req := service.InitiateRequest{BatchID: s.batch, Reason: "listeria", Caller: reporter}

	s.Run("missing caller is unauthorized", func() {
		_, err := s.service.Initiate(s.ctx, service.InitiateRequest{BatchID: s.batch, Reason: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unregistered batch is invalid_batch", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(false, nil)
		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidBatch))
	})

	s.Run("report count below threshold is insufficient_reports", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(2), nil)
		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientReports))
	})

	s.Run("oversized payload is metadata_too_long", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(3), nil)
		big := req
		big.Payload = make([]byte, models.MaxMetadataLength+1)
		_, err := s.service.Initiate(s.ctx, big)
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("oversized reason is metadata_too_long", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(3), nil)
		long := req
		long.Reason = strings.Repeat("r", models.MaxReasonLength+1)
		_, err := s.service.Initiate(s.ctx, long)
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("active recall is already_recalled", func() {
		s.initiate(s.batch)
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRecalled))
	})

	s.Run("paused is checked before any collaborator call", func() {
		s.Require().NoError(s.service.Pause(s.ctx, admin))
		_, err := s.service.Initiate(s.ctx, service.InitiateRequest{BatchID: s.other, Reason: "x", Caller: reporter})
		s.True(dErrors.HasCode(err, dErrors.CodePaused))
	})
}

func (s *ServiceSuite) TestInitiateRollsBackOnCollaboratorFailure() {
	req := service.InitiateRequest{BatchID: s.batch, Reason: "listeria", Caller: reporter}

	s.Run("alert failure", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(3), nil)
		s.batches.EXPECT().GetBatchDetails(gomock.Any(), s.batch).Return(&ports.BatchDetails{}, nil)
		s.alerts.EXPECT().SendAlert(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeDependencyFailure))
		s.assertNothingCommitted()
	})

	s.Run("reward failure", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(3), nil)
		s.batches.EXPECT().GetBatchDetails(gomock.Any(), s.batch).Return(&ports.BatchDetails{}, nil)
		s.alerts.EXPECT().SendAlert(gomock.Any(), gomock.Any()).Return(nil)
		s.rewards.EXPECT().RewardReporter(gomock.Any(), reporter, uint64(100)).Return(errors.New("pool empty"))

		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeDependencyFailure))
		s.assertNothingCommitted()
	})

	s.Run("batch directory failure", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(false, errors.New("timeout"))
		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeDependencyFailure))
	})

	s.Run("report tally failure", func() {
		s.batches.EXPECT().IsBatchRegistered(gomock.Any(), s.batch).Return(true, nil)
		s.reports.EXPECT().ReportCountForBatch(gomock.Any(), s.batch).Return(uint64(0), errors.New("redis down"))
		_, err := s.service.Initiate(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeDependencyFailure))
	})

	s.Run("next success still gets id 1", func() {
		s.Equal(id.RecallID(1), s.initiate(s.batch))
	})
}

func (s *ServiceSuite) assertNothingCommitted() {
	recall, err := s.service.GetRecall(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(recall)
	status, err := s.service.GetBatchStatus(s.ctx, s.batch)
	s.Require().NoError(err)
	s.Nil(status)
	meta, err := s.service.GetMetadata(s.ctx, 1)
	s.Require().NoError(err)
	s.Nil(meta)
	counter, err := s.service.RecallCounter(s.ctx)
	s.Require().NoError(err)
	s.Zero(counter)
	s.Equal(uint64(1), s.height())
}
