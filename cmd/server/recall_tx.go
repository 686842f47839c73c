package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"recallguard/internal/platform/config"
	"recallguard/internal/platform/postgres"
	"recallguard/internal/recall/adapters/batchdir"
	"recallguard/internal/recall/adapters/rewards"
	"recallguard/internal/recall/handler"
	"recallguard/internal/recall/models"
	"recallguard/internal/recall/ports"
	"recallguard/internal/recall/service"
	"recallguard/internal/recall/store"
	"recallguard/pkg/platform/audit"
	auditmemory "recallguard/pkg/platform/audit/store/memory"
	auditpostgres "recallguard/pkg/platform/audit/store/postgres"
)

type batchRegistry interface {
	ports.BatchDirectory
	handler.BatchRegistrar
}

// recallBackend is the storage picked at startup: the recall store, the
// transaction runner that goes with it, and the collaborators that share its
// database.
type recallBackend struct {
	store   service.Store
	tx      service.StoreTx
	batches batchRegistry
	rewards ports.RewardDispatcher
	audit   audit.Store
	db      *sql.DB
}

func (b *recallBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// openBackend selects Postgres when DATABASE_URL is set, otherwise the
// in-memory store with staged transactions.
func openBackend(ctx context.Context, cfg config.Server, settings *models.Settings, log *slog.Logger) (*recallBackend, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; recall state is kept in memory")
		mem := store.NewInMemory(settings)
		return &recallBackend{
			store:   mem,
			tx:      mem,
			batches: batchdir.NewInMemory(),
			rewards: rewards.NewInMemory(),
			audit:   auditmemory.NewInMemoryStore(),
		}, nil
	}

	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	pg := store.NewPostgres(db)
	if err := pg.Bootstrap(ctx, settings); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap recall settings: %w", err)
	}
	log.Info("recall state backed by postgres")
	return &recallBackend{
		store:   pg,
		tx:      store.NewPostgresTx(pg, cfg.TxTimeout),
		batches: batchdir.NewPostgres(db),
		rewards: rewards.NewPostgres(db),
		audit:   auditpostgres.New(db),
		db:      db,
	}, nil
}
