package models

import (
	"fmt"
	"strings"

	dErrors "recallguard/pkg/domain-errors"
)

func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	if len(reason) > MaxReasonLength {
		return dErrors.New(dErrors.CodeMetadataTooLong, fmt.Sprintf("reason exceeds %d bytes", MaxReasonLength))
	}
	return nil
}

func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return dErrors.New(dErrors.CodeMetadataTooLong, fmt.Sprintf("notes exceed %d bytes", MaxNotesLength))
	}
	return nil
}

func ValidatePayload(payload []byte) error {
	if len(payload) > MaxMetadataLength {
		return dErrors.New(dErrors.CodeMetadataTooLong, fmt.Sprintf("metadata payload exceeds %d bytes", MaxMetadataLength))
	}
	return nil
}

func ValidateThreshold(threshold uint64) error {
	if threshold < MinThreshold {
		return dErrors.New(dErrors.CodeInvalidThreshold, fmt.Sprintf("threshold must be at least %d", MinThreshold))
	}
	return nil
}

// NormalizeReportIDs trims and de-duplicates linked report identifiers,
// preserving first-seen order, and enforces count and length bounds.
func NormalizeReportIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if len(v) > MaxReportIDLength {
			return nil, dErrors.New(dErrors.CodeMetadataTooLong, fmt.Sprintf("report id exceeds %d bytes", MaxReportIDLength))
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) > MaxLinkedReports {
		return nil, dErrors.New(dErrors.CodeMetadataTooLong, fmt.Sprintf("at most %d linked reports", MaxLinkedReports))
	}
	return out, nil
}
