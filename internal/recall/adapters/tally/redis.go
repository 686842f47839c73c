package tally

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "recallguard/pkg/domain"
)

const keyPrefix = "recall:reports:"

// Redis keeps one set of reporters per batch.
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func reportsKey(batchID id.BatchID) string {
	return keyPrefix + batchID.String()
}

// RecordReport adds reporter to the batch's set and returns the set size.
func (t *Redis) RecordReport(ctx context.Context, batchID id.BatchID, reporter id.Principal) (uint64, error) {
	key := reportsKey(batchID)
	pipe := t.client.TxPipeline()
	pipe.SAdd(ctx, key, reporter.String())
	card := pipe.SCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("record report: %w", err)
	}
	return uint64(card.Val()), nil
}

func (t *Redis) ReportCountForBatch(ctx context.Context, batchID id.BatchID) (uint64, error) {
	n, err := t.client.SCard(ctx, reportsKey(batchID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return uint64(n), nil
}
