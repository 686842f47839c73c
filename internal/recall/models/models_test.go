package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

type ModelsSuite struct {
	suite.Suite
	batch id.BatchID
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

func (s *ModelsSuite) SetupTest() {
	batch, err := id.ParseBatchID(strings.Repeat("ab", id.BatchIDSize))
	s.Require().NoError(err)
	s.batch = batch
}

func (s *ModelsSuite) TestParseRecallStatus() {
	s.Run("accepts names case-insensitively", func() {
		for in, want := range map[string]models.RecallStatus{
			"Initiated":  models.StatusInitiated,
			"disputed":   models.StatusDisputed,
			"VERIFIED":   models.StatusVerified,
			" resolved ": models.StatusResolved,
		} {
			got, err := models.ParseRecallStatus(in)
			s.Require().NoError(err, in)
			s.Equal(want, got)
		}
	})

	s.Run("unknown status is invalid_status", func() {
		_, err := models.ParseRecallStatus("closed")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})
}

func (s *ModelsSuite) TestStatusTargets() {
	s.True(models.StatusVerified.IsDisputeOutcome())
	s.True(models.StatusResolved.IsDisputeOutcome())
	s.False(models.StatusDisputed.IsDisputeOutcome())
	s.False(models.StatusInitiated.IsDisputeOutcome())

	s.True(models.StatusDisputed.IsAdminTarget())
	s.False(models.StatusInitiated.IsAdminTarget())
	s.False(models.RecallStatus("Bogus").IsValid())
}

func (s *ModelsSuite) TestNewRecall() {
	s.Run("starts initiated with default expiry", func() {
		r, err := models.NewRecall(1, s.batch, "acme", "salmonella", 42)
		s.Require().NoError(err)
		s.Equal(models.StatusInitiated, r.Status)
		s.Equal(uint64(42), r.CreatedAtHeight)
		s.Equal(uint64(42+models.DefaultRecallTTL), r.ExpiresAtHeight)
		s.Zero(r.AffectedCount)
		s.Nil(r.ResolutionNotes)
	})

	s.Run("reason over bound is metadata_too_long", func() {
		_, err := models.NewRecall(1, s.batch, "acme", strings.Repeat("x", models.MaxReasonLength+1), 1)
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("blank reason is a validation error", func() {
		_, err := models.NewRecall(1, s.batch, "acme", "  ", 1)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("zero batch violates invariant", func() {
		_, err := models.NewRecall(1, id.BatchID{}, "acme", "reason", 1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ModelsSuite) TestRecallTransitions() {
	r, err := models.NewRecall(1, s.batch, "acme", "listeria", 1)
	s.Require().NoError(err)
	s.NoError(r.CanDispute())
	s.NoError(r.CanVote())

	r.ApplyStatus(models.StatusDisputed, "")
	s.True(dErrors.HasCode(r.CanDispute(), dErrors.CodeInvalidStatus))
	s.True(dErrors.HasCode(r.CanVote(), dErrors.CodeInvalidStatus))
	s.Require().NotNil(r.ResolutionNotes)
	s.Empty(*r.ResolutionNotes)
}

func (s *ModelsSuite) TestDisputeResolution() {
	d := &models.Dispute{RecallID: 1, Disputer: "distributor"}
	s.NoError(d.CanResolve())
	d.ApplyResolution("upheld")
	s.True(d.Resolved)
	s.Equal("upheld", *d.Resolution)
	s.True(dErrors.HasCode(d.CanResolve(), dErrors.CodeInvalidStatus))
}

func (s *ModelsSuite) TestSettings() {
	s.Run("rejects threshold below minimum", func() {
		_, err := models.NewSettings("admin", 2)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidThreshold))
	})

	s.Run("counter and height advance independently", func() {
		st, err := models.NewSettings("admin", models.DefaultThreshold)
		s.Require().NoError(err)
		s.Equal(uint64(models.FirstLedgerHeight), st.Height)
		s.Equal(id.RecallID(1), st.NextRecallID())
		s.Equal(id.RecallID(2), st.NextRecallID())
		st.Advance()
		s.Equal(uint64(2), st.Height)
	})

	s.Run("admin guard is plain equality", func() {
		st, err := models.NewSettings("admin", models.DefaultThreshold)
		s.Require().NoError(err)
		s.True(st.IsAdmin("admin"))
		s.False(st.IsAdmin("Admin"))
		s.False(st.IsAdmin(""))
	})

	s.Run("clone is detached", func() {
		st, _ := models.NewSettings("admin", models.DefaultThreshold)
		c := st.Clone()
		c.Paused = true
		s.False(st.Paused)
	})
}

func (s *ModelsSuite) TestNormalizeReportIDs() {
	s.Run("trims and de-duplicates in order", func() {
		out, err := models.NormalizeReportIDs([]string{" r1", "r2", "r1 ", "", "r3"})
		s.Require().NoError(err)
		s.Equal([]string{"r1", "r2", "r3"}, out)
	})

	s.Run("too many reports", func() {
		ids := make([]string, models.MaxLinkedReports+1)
		for i := range ids {
			ids[i] = strings.Repeat("r", i+1)
		}
		_, err := models.NormalizeReportIDs(ids)
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})

	s.Run("report id too long", func() {
		_, err := models.NormalizeReportIDs([]string{strings.Repeat("r", models.MaxReportIDLength+1)})
		s.True(dErrors.HasCode(err, dErrors.CodeMetadataTooLong))
	})
}

func (s *ModelsSuite) TestBounds() {
	s.NoError(models.ValidatePayload(make([]byte, models.MaxMetadataLength)))
	s.True(dErrors.HasCode(models.ValidatePayload(make([]byte, models.MaxMetadataLength+1)), dErrors.CodeMetadataTooLong))
	s.NoError(models.ValidateNotes(strings.Repeat("n", models.MaxNotesLength)))
	s.True(dErrors.HasCode(models.ValidateNotes(strings.Repeat("n", models.MaxNotesLength+1)), dErrors.CodeMetadataTooLong))
}
