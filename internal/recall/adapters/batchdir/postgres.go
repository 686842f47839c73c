package batchdir

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"recallguard/internal/recall/ports"
	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/sentinel"
	txcontext "recallguard/pkg/platform/tx"
)

// Postgres is a batch directory over the batches table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (d *Postgres) Register(ctx context.Context, batchID id.BatchID, owner id.Principal, metadata string) error {
	_, err := txcontext.ExecerFrom(ctx, d.db).ExecContext(ctx, `
		INSERT INTO batches (batch_id, owner, metadata, created_at) VALUES ($1, $2, $3, $4)
	`, batchID.String(), string(owner), metadata, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("register batch: %w", err)
	}
	return nil
}

func (d *Postgres) IsBatchRegistered(ctx context.Context, batchID id.BatchID) (bool, error) {
	var exists bool
	err := txcontext.ExecerFrom(ctx, d.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM batches WHERE batch_id = $1)`, batchID.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check batch registration: %w", err)
	}
	return exists, nil
}

func (d *Postgres) GetBatchDetails(ctx context.Context, batchID id.BatchID) (*ports.BatchDetails, error) {
	var (
		details ports.BatchDetails
		owner   string
	)
	err := txcontext.ExecerFrom(ctx, d.db).QueryRowContext(ctx,
		`SELECT owner, metadata, created_at FROM batches WHERE batch_id = $1`, batchID.String(),
	).Scan(&owner, &details.Metadata, &details.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get batch details: %w", err)
	}
	details.Owner = id.Principal(owner)
	return &details, nil
}
