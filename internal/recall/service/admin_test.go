package service_test

import (
	"recallguard/internal/recall/service"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

func (s *ServiceSuite) TestAdministrativeOperationsRequireAdmin() {
	for name, op := range map[string]func(caller id.Principal) error{
		"SetThreshold":      func(c id.Principal) error { return s.service.SetThreshold(s.ctx, 5, c) },
		"Pause":             func(c id.Principal) error { return s.service.Pause(s.ctx, c) },
		"Unpause":           func(c id.Principal) error { return s.service.Unpause(s.ctx, c) },
		"TransferOwnership": func(c id.Principal) error { return s.service.TransferOwnership(s.ctx, "mallory", c) },
	} {
		s.Run(name, func() {
			err := op(reporter)
			s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
			err = op("")
			s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}

	owner, err := s.service.Owner(s.ctx)
	s.Require().NoError(err)
	s.Equal(admin, owner)
	s.Equal(uint64(1), s.height(), "rejected operations do not advance the ledger")
}

func (s *ServiceSuite) TestSetThreshold() {
	s.Run("below minimum is invalid_threshold", func() {
		err := s.service.SetThreshold(s.ctx, 2, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidThreshold))
	})

	s.Run("accepts minimum and above", func() {
		s.Require().NoError(s.service.SetThreshold(s.ctx, 3, admin))
		s.Require().NoError(s.service.SetThreshold(s.ctx, 7, admin))
		threshold, err := s.service.Threshold(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint64(7), threshold)
	})
}

func (s *ServiceSuite) TestPauseOnlyBlocksInitiation() {
	recallID := s.initiate(s.batch)
	s.Require().NoError(s.service.Pause(s.ctx, admin))

	paused, err := s.service.IsPaused(s.ctx)
	s.Require().NoError(err)
	s.True(paused)

	_, err = s.service.Initiate(s.ctx, service.InitiateRequest{BatchID: s.other, Reason: "x", Caller: reporter})
	s.True(dErrors.HasCode(err, dErrors.CodePaused))

	s.NoError(s.service.Verify(s.ctx, recallID, true, verifier))
	s.NoError(s.service.Dispute(s.ctx, recallID, "disputed while paused", "distributor"))

	s.Require().NoError(s.service.Unpause(s.ctx, admin))
	paused, err = s.service.IsPaused(s.ctx)
	s.Require().NoError(err)
	s.False(paused)
	s.Equal(id.RecallID(2), s.initiate(s.other))
}

func (s *ServiceSuite) TestTransferOwnership() {
	s.Run("empty principal is a validation error", func() {
		err := s.service.TransferOwnership(s.ctx, "", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("replaces the administrator without acceptance", func() {
		s.Require().NoError(s.service.TransferOwnership(s.ctx, "regulator", admin))
		owner, err := s.service.Owner(s.ctx)
		s.Require().NoError(err)
		s.Equal(id.Principal("regulator"), owner)

		err = s.service.Pause(s.ctx, admin)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.NoError(s.service.Pause(s.ctx, "regulator"))
	})
}

func (s *ServiceSuite) TestLedgerHeightAdvancesOnEveryStateChange() {
	s.Equal(uint64(1), s.height())
	recallID := s.initiate(s.batch)
	s.Equal(uint64(2), s.height())
	s.Require().NoError(s.service.Verify(s.ctx, recallID, true, verifier))
	s.Equal(uint64(3), s.height())
	s.Require().NoError(s.service.SetThreshold(s.ctx, 4, admin))
	s.Equal(uint64(4), s.height())

	_ = s.service.Verify(s.ctx, recallID, true, verifier)
	s.Equal(uint64(4), s.height(), "failed operations leave the height unchanged")
}
