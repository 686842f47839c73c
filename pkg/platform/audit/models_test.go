package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditEventCategory(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventRecallInitiated.Category())
	assert.Equal(t, CategorySecurity, EventOwnershipTransferred.Category())
	assert.Equal(t, CategoryOperations, EventVoteRecorded.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("unknown").Category())
}
