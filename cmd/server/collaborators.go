package main

import (
	"context"
	"log/slog"
	"time"

	"recallguard/internal/platform/config"
	"recallguard/internal/platform/kafka"
	"recallguard/internal/platform/redis"
	ratelimitmw "recallguard/internal/ratelimit/middleware"
	"recallguard/internal/ratelimit/store/bucket"
	"recallguard/internal/recall/adapters/alerts"
	"recallguard/internal/recall/adapters/tally"
	"recallguard/internal/recall/handler"
	"recallguard/internal/recall/ports"
)

type reportTally interface {
	ports.ReportTally
	handler.ReportRecorder
}

// newReportTally uses Redis when REDIS_URL is set. A nil client keeps the
// tally in memory.
func newReportTally(client *redis.Client, log *slog.Logger) reportTally {
	if client == nil {
		log.Warn("REDIS_URL not set; report tally is kept in memory")
		return tally.NewInMemory()
	}
	log.Info("report tally backed by redis")
	return tally.NewRedis(client.Client)
}

// newWriteLimiter shares the Redis window across replicas when a client is
// available.
func newWriteLimiter(client *redis.Client, writesPerMinute int, log *slog.Logger) *ratelimitmw.Middleware {
	var limiter ratelimitmw.Limiter = bucket.NewInMemoryBucketStore()
	if client != nil {
		limiter = bucket.NewRedisBucketStore(client.Client)
	}
	return ratelimitmw.New(limiter, log, writesPerMinute, time.Minute)
}

// newAlertDispatcher publishes to Kafka when KAFKA_BROKERS is set and
// otherwise only logs alerts.
func newAlertDispatcher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (ports.AlertDispatcher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set; recall alerts are logged only")
		return alerts.NewLogDispatcher(log), func() {}, nil
	}
	producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Brokers, ClientID: "recallguard"})
	if err != nil {
		return nil, nil, err
	}
	if err := producer.Ping(ctx); err != nil {
		producer.Close()
		return nil, nil, err
	}
	if err := producer.EnsureTopic(ctx, cfg.AlertTopic, 3, 1); err != nil {
		producer.Close()
		return nil, nil, err
	}
	log.Info("recall alerts published to kafka", "topic", cfg.AlertTopic)
	return alerts.NewKafkaDispatcher(producer, cfg.AlertTopic, log), producer.Close, nil
}
