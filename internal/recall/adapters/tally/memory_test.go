package tally

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "recallguard/pkg/domain"
)

func TestInMemoryCountsDistinctReporters(t *testing.T) {
	ctx := context.Background()
	tally := NewInMemory()
	batch, err := id.ParseBatchID(strings.Repeat("c4", id.BatchIDSize))
	require.NoError(t, err)

	count, err := tally.ReportCountForBatch(ctx, batch)
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, reporter := range []id.Principal{"clinic-a", "clinic-b", "clinic-a", "clinic-c"} {
		_, err := tally.RecordReport(ctx, batch, reporter)
		require.NoError(t, err)
	}

	count, err = tally.ReportCountForBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}
