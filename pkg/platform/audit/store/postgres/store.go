package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "recallguard/pkg/domain"
	audit "recallguard/pkg/platform/audit"
	txcontext "recallguard/pkg/platform/tx"
)

// Store implements audit.Store on the audit_events table. Appends join the
// transaction carried in context so an audit row commits with the change it
// describes.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an audit event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	query := `
		INSERT INTO audit_events (
			id, category, occurred_at, actor, action,
			recall_id, batch_id, detail, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, query,
		uuid.New(),
		string(category),
		event.Timestamp,
		string(event.Actor),
		event.Action,
		int64(event.RecallID),
		event.BatchID,
		event.Detail,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByRecall returns events for a recall in insertion order.
func (s *Store) ListByRecall(ctx context.Context, recallID id.RecallID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, occurred_at, actor, action, recall_id, batch_id, detail, request_id
		FROM audit_events
		WHERE recall_id = $1
		ORDER BY occurred_at, id
	`, int64(recallID))
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e        audit.Event
			category string
			actor    string
			rid      int64
		)
		if err := rows.Scan(&category, &e.Timestamp, &actor, &e.Action, &rid, &e.BatchID, &e.Detail, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		e.Actor = id.Principal(actor)
		e.RecallID = id.RecallID(rid)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
