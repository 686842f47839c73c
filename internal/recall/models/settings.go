package models

import (
	id "recallguard/pkg/domain"
	dErrors "recallguard/pkg/domain-errors"
)

// Settings holds the configuration scalars and the ledger height. It is
// loaded and saved as a unit inside each transaction.
type Settings struct {
	Admin         id.Principal `json:"admin"`
	Paused        bool         `json:"paused"`
	Threshold     uint64       `json:"threshold"`
	RecallCounter uint64       `json:"recall_counter"`
	Height        uint64       `json:"height"`
}

// NewSettings returns the initial configuration for a fresh ledger.
func NewSettings(admin id.Principal, threshold uint64) (*Settings, error) {
	if admin.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "administrator cannot be empty")
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Settings{
		Admin:         admin,
		Threshold:     threshold,
		RecallCounter: FirstRecallCounter,
		Height:        FirstLedgerHeight,
	}, nil
}

// IsAdmin is the single authorization guard for administrative operations.
func (s *Settings) IsAdmin(caller id.Principal) bool {
	return !caller.IsZero() && caller == s.Admin
}

// NextRecallID advances the counter and returns the new identifier.
func (s *Settings) NextRecallID() id.RecallID {
	s.RecallCounter++
	return id.RecallID(s.RecallCounter)
}

// Advance moves the ledger forward after a successful state change.
func (s *Settings) Advance() {
	s.Height++
}

func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
