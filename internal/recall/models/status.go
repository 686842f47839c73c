package models

import (
	"strings"

	dErrors "recallguard/pkg/domain-errors"
)

// RecallStatus is the lifecycle state of a recall.
type RecallStatus string

const (
	StatusInitiated RecallStatus = "Initiated"
	StatusDisputed  RecallStatus = "Disputed"
	StatusVerified  RecallStatus = "Verified"
	StatusResolved  RecallStatus = "Resolved"
)

// ParseRecallStatus accepts a status name case-insensitively.
func ParseRecallStatus(s string) (RecallStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "initiated":
		return StatusInitiated, nil
	case "disputed":
		return StatusDisputed, nil
	case "verified":
		return StatusVerified, nil
	case "resolved":
		return StatusResolved, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidStatus, "unknown recall status: "+s)
}

func (s RecallStatus) IsValid() bool {
	switch s {
	case StatusInitiated, StatusDisputed, StatusVerified, StatusResolved:
		return true
	}
	return false
}

func (s RecallStatus) String() string {
	return string(s)
}

// IsDisputeOutcome reports whether s may close a dispute.
func (s RecallStatus) IsDisputeOutcome() bool {
	return s == StatusVerified || s == StatusResolved
}

// IsAdminTarget reports whether an administrator may force a recall into s.
// Initiated is only ever entered through initiation.
func (s RecallStatus) IsAdminTarget() bool {
	return s == StatusVerified || s == StatusResolved || s == StatusDisputed
}
