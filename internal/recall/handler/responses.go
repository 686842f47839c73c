package handler

import (
	id "recallguard/pkg/domain"
)

// InitiateRecallResponse is returned by POST /recalls.
type InitiateRecallResponse struct {
	RecallID id.RecallID `json:"recall_id"`
}

// SettingsResponse is returned by GET /settings.
type SettingsResponse struct {
	Owner         id.Principal `json:"owner"`
	Paused        bool         `json:"paused"`
	Threshold     uint64       `json:"threshold"`
	RecallCounter uint64       `json:"recall_counter"`
	LedgerHeight  uint64       `json:"ledger_height"`
}

// ReportCountResponse is returned by the report intake endpoints.
type ReportCountResponse struct {
	BatchID     id.BatchID `json:"batch_id"`
	ReportCount uint64     `json:"report_count"`
}
