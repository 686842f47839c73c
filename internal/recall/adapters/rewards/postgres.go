package rewards

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "recallguard/pkg/domain"
	txcontext "recallguard/pkg/platform/tx"
)

// Postgres appends one row per credit to reward_credits. When the context
// carries a transaction the credit joins it, so a rolled back recall leaves
// no credit behind.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (l *Postgres) RewardReporter(ctx context.Context, reporter id.Principal, amount uint64) error {
	if reporter.IsZero() || amount == 0 {
		return ErrInvalidCredit
	}
	_, err := txcontext.ExecerFrom(ctx, l.db).ExecContext(ctx, `
		INSERT INTO reward_credits (id, reporter, amount, credited_at) VALUES ($1, $2, $3, $4)
	`, uuid.New(), reporter.String(), int64(amount), l.now().UTC())
	if err != nil {
		return fmt.Errorf("credit reporter: %w", err)
	}
	return nil
}

// Balance sums every credit recorded for reporter.
func (l *Postgres) Balance(ctx context.Context, reporter id.Principal) (uint64, error) {
	var total int64
	err := txcontext.ExecerFrom(ctx, l.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM reward_credits WHERE reporter = $1`, reporter.String(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum reporter credits: %w", err)
	}
	return uint64(total), nil
}
