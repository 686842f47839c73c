package store

import (
	"context"
	"time"

	"recallguard/internal/recall/service"
	dErrors "recallguard/pkg/domain-errors"
	txcontext "recallguard/pkg/platform/tx"
)

// defaultTxTimeout bounds how long a database transaction may hold its
// connection and row locks when the caller sets no deadline.
const defaultTxTimeout = 5 * time.Second

// PostgresTx runs recall operations in a database transaction. The
// transaction travels in the context handed to fn so the reward ledger and
// the audit store join it.
type PostgresTx struct {
	store   *PostgresStore
	timeout time.Duration
}

func NewPostgresTx(store *PostgresStore, timeout time.Duration) *PostgresTx {
	return &PostgresTx{store: store, timeout: timeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.store); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}

var (
	_ service.Store   = (*PostgresStore)(nil)
	_ service.StoreTx = (*PostgresTx)(nil)
)
