package service_test

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"recallguard/internal/recall/models"
	"recallguard/internal/recall/service"
	"recallguard/internal/recall/service/mocks"
	dErrors "recallguard/pkg/domain-errors"
	"recallguard/pkg/platform/audit"
	"recallguard/pkg/testutil"
)

func (s *ServiceSuite) TestQueriesReturnNilForUnknownKeys() {
	recall, err := s.service.GetRecall(s.ctx, 1)
	s.NoError(err)
	s.Nil(recall)

	status, err := s.service.GetBatchStatus(s.ctx, s.batch)
	s.NoError(err)
	s.Nil(status)

	dispute, err := s.service.GetDispute(s.ctx, 1)
	s.NoError(err)
	s.Nil(dispute)

	vote, err := s.service.GetVote(s.ctx, 1, verifier)
	s.NoError(err)
	s.Nil(vote)

	meta, err := s.service.GetMetadata(s.ctx, 1)
	s.NoError(err)
	s.Nil(meta)

	threshold, err := s.service.Threshold(s.ctx)
	s.NoError(err)
	s.Equal(uint64(models.DefaultThreshold), threshold)

	counter, err := s.service.RecallCounter(s.ctx)
	s.NoError(err)
	s.Zero(counter)
}

func (s *ServiceSuite) TestQueriesAreRepeatable() {
	recallID := s.initiate(s.batch)
	first, err := s.service.GetRecall(s.ctx, recallID)
	s.Require().NoError(err)
	second, err := s.service.GetRecall(s.ctx, recallID)
	s.Require().NoError(err)
	s.Equal(first, second)

	first.Status = models.StatusResolved
	third, err := s.service.GetRecall(s.ctx, recallID)
	s.Require().NoError(err)
	s.Equal(models.StatusInitiated, third.Status, "callers cannot mutate stored records")
}

func (s *ServiceSuite) TestAuditFailureDoesNotFailOperation() {
	audit := mocks.NewMockAuditPublisher(s.ctrl)
	audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit sink down"))
	svc, err := service.New(s.store, s.store, service.Collaborators{
		Batches: s.batches, Reports: s.reports, Alerts: s.alerts, Rewards: s.rewards,
	}, service.WithAuditPublisher(audit))
	s.Require().NoError(err)

	s.NoError(svc.Pause(s.ctx, admin))
}

func (s *ServiceSuite) TestAuditEventUsesRequestTime() {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var captured audit.Event
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event audit.Event) error {
			captured = event
			return nil
		})
	svc, err := service.New(s.store, s.store, service.Collaborators{
		Batches: s.batches, Reports: s.reports, Alerts: s.alerts, Rewards: s.rewards,
	}, service.WithAuditPublisher(publisher))
	s.Require().NoError(err)

	ctx := testutil.FixedTime(testutil.CallerContext(admin), at)
	s.Require().NoError(svc.Pause(ctx, admin))
	s.Equal(at, captured.Timestamp)
	s.Equal(admin, captured.Actor)
}

func (s *ServiceSuite) TestStoreFailuresAreInternal() {
	mockStore := mocks.NewMockStore(s.ctrl)
	mockTx := mocks.NewMockStoreTx(s.ctrl)
	mockTx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, service.Store) error) error {
			return fn(ctx, mockStore)
		}).AnyTimes()

	svc, err := service.New(mockStore, mockTx, service.Collaborators{
		Batches: s.batches, Reports: s.reports, Alerts: s.alerts, Rewards: s.rewards,
	})
	s.Require().NoError(err)

	s.Run("settings load failure aborts operations", func() {
		mockStore.EXPECT().LoadSettings(gomock.Any()).Return(nil, errors.New("connection reset"))
		err := svc.Pause(s.ctx, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("query failure is internal, not nil", func() {
		mockStore.EXPECT().FindRecall(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
		recall, err := svc.GetRecall(s.ctx, 1)
		s.Nil(recall)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("commit failure without a code becomes internal", func() {
		failingTx := mocks.NewMockStoreTx(s.ctrl)
		failingTx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).Return(errors.New("commit failed"))
		svc, err := service.New(mockStore, failingTx, service.Collaborators{
			Batches: s.batches, Reports: s.reports, Alerts: s.alerts, Rewards: s.rewards,
		})
		s.Require().NoError(err)
		err = svc.Unpause(s.ctx, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
