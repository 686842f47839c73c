package store

import "recallguard/internal/recall/models"

func cloneRecall(r *models.Recall) *models.Recall {
	c := *r
	if r.ResolutionNotes != nil {
		notes := *r.ResolutionNotes
		c.ResolutionNotes = &notes
	}
	return &c
}

func cloneBatchStatus(b *models.BatchRecallStatus) *models.BatchRecallStatus {
	c := *b
	if b.RecallID != nil {
		rid := *b.RecallID
		c.RecallID = &rid
	}
	return &c
}

func cloneDispute(d *models.Dispute) *models.Dispute {
	c := *d
	if d.Resolution != nil {
		res := *d.Resolution
		c.Resolution = &res
	}
	return &c
}

func cloneVote(v *models.VerifierVote) *models.VerifierVote {
	c := *v
	return &c
}

func cloneMetadata(m *models.RecallMetadata) *models.RecallMetadata {
	return &models.RecallMetadata{
		RecallID:        m.RecallID,
		Payload:         append([]byte(nil), m.Payload...),
		LinkedReportIDs: append([]string(nil), m.LinkedReportIDs...),
	}
}
