package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"recallguard/internal/recall/models"
	id "recallguard/pkg/domain"
	"recallguard/pkg/platform/sentinel"
	txcontext "recallguard/pkg/platform/tx"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresStore persists recall state in PostgreSQL. Every statement runs on
// the transaction carried in context when there is one.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed recall store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) txcontext.Execer {
	return txcontext.ExecerFrom(ctx, s.db)
}

// Bootstrap writes the initial settings row unless one already exists.
func (s *PostgresStore) Bootstrap(ctx context.Context, settings *models.Settings) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO recall_settings (id, admin, paused, threshold, recall_counter, height)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, string(settings.Admin), settings.Paused, int64(settings.Threshold),
		int64(settings.RecallCounter), int64(settings.Height))
	if err != nil {
		return fmt.Errorf("bootstrap recall settings: %w", err)
	}
	return nil
}

// LoadSettings locks the settings row for the rest of the transaction, which
// serializes state-changing operations into a single order.
func (s *PostgresStore) LoadSettings(ctx context.Context) (*models.Settings, error) {
	query := `SELECT admin, paused, threshold, recall_counter, height FROM recall_settings WHERE id = 1`
	if _, inTx := txcontext.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	var (
		settings                   models.Settings
		admin                      string
		threshold, counter, height int64
	)
	err := s.execer(ctx).QueryRowContext(ctx, query).Scan(&admin, &settings.Paused, &threshold, &counter, &height)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load recall settings: %w", err)
	}
	settings.Admin = id.Principal(admin)
	settings.Threshold = uint64(threshold)
	settings.RecallCounter = uint64(counter)
	settings.Height = uint64(height)
	return &settings, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE recall_settings
		SET admin = $1, paused = $2, threshold = $3, recall_counter = $4, height = $5
		WHERE id = 1
	`, string(settings.Admin), settings.Paused, int64(settings.Threshold),
		int64(settings.RecallCounter), int64(settings.Height))
	if err != nil {
		return fmt.Errorf("save recall settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindRecall(ctx context.Context, recallID id.RecallID) (*models.Recall, error) {
	var (
		r                         models.Recall
		rid, created, expires     int64
		affected                  int64
		batchHex, initiator, stat string
		notes                     sql.NullString
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT id, batch_id, initiator, created_at_height, status, reason,
		       affected_count, resolution_notes, expires_at_height
		FROM recalls WHERE id = $1
	`, int64(recallID)).Scan(&rid, &batchHex, &initiator, &created, &stat, &r.Reason, &affected, &notes, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find recall: %w", err)
	}
	batchID, err := id.ParseBatchID(batchHex)
	if err != nil {
		return nil, fmt.Errorf("decode recall batch id: %w", err)
	}
	r.ID = id.RecallID(rid)
	r.BatchID = batchID
	r.Initiator = id.Principal(initiator)
	r.CreatedAtHeight = uint64(created)
	r.Status = models.RecallStatus(stat)
	r.AffectedCount = uint64(affected)
	r.ExpiresAtHeight = uint64(expires)
	if notes.Valid {
		r.ResolutionNotes = &notes.String
	}
	return &r, nil
}

func (s *PostgresStore) SaveRecall(ctx context.Context, recall *models.Recall) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO recalls (id, batch_id, initiator, created_at_height, status, reason,
		                     affected_count, resolution_notes, expires_at_height)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, resolution_notes = EXCLUDED.resolution_notes
	`, int64(recall.ID), recall.BatchID.String(), string(recall.Initiator), int64(recall.CreatedAtHeight),
		string(recall.Status), recall.Reason, int64(recall.AffectedCount), nullString(recall.ResolutionNotes),
		int64(recall.ExpiresAtHeight))
	if err != nil {
		return fmt.Errorf("save recall: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBatchStatus(ctx context.Context, batchID id.BatchID) (*models.BatchRecallStatus, error) {
	var (
		status  = models.BatchRecallStatus{BatchID: batchID}
		rid     sql.NullInt64
		updated int64
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT active_recall, recall_id, last_updated_height
		FROM batch_recall_status WHERE batch_id = $1
	`, batchID.String()).Scan(&status.ActiveRecall, &rid, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find batch recall status: %w", err)
	}
	if rid.Valid {
		recallID := id.RecallID(rid.Int64)
		status.RecallID = &recallID
	}
	status.LastUpdatedAt = uint64(updated)
	return &status, nil
}

func (s *PostgresStore) SaveBatchStatus(ctx context.Context, status *models.BatchRecallStatus) error {
	var rid sql.NullInt64
	if status.RecallID != nil {
		rid = sql.NullInt64{Int64: int64(*status.RecallID), Valid: true}
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO batch_recall_status (batch_id, active_recall, recall_id, last_updated_height)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (batch_id) DO UPDATE
		SET active_recall = EXCLUDED.active_recall,
		    recall_id = EXCLUDED.recall_id,
		    last_updated_height = EXCLUDED.last_updated_height
	`, status.BatchID.String(), status.ActiveRecall, rid, int64(status.LastUpdatedAt))
	if err != nil {
		return fmt.Errorf("save batch recall status: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindDispute(ctx context.Context, recallID id.RecallID) (*models.Dispute, error) {
	var (
		d          = models.Dispute{RecallID: recallID}
		disputer   string
		created    int64
		resolution sql.NullString
	)
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT disputer, notes, created_at_height, resolved, resolution
		FROM recall_disputes WHERE recall_id = $1
	`, int64(recallID)).Scan(&disputer, &d.Notes, &created, &d.Resolved, &resolution)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find dispute: %w", err)
	}
	d.Disputer = id.Principal(disputer)
	d.CreatedAtHeight = uint64(created)
	if resolution.Valid {
		d.Resolution = &resolution.String
	}
	return &d, nil
}

func (s *PostgresStore) SaveDispute(ctx context.Context, dispute *models.Dispute) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO recall_disputes (recall_id, disputer, notes, created_at_height, resolved, resolution)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (recall_id) DO UPDATE
		SET resolved = EXCLUDED.resolved, resolution = EXCLUDED.resolution
	`, int64(dispute.RecallID), string(dispute.Disputer), dispute.Notes, int64(dispute.CreatedAtHeight),
		dispute.Resolved, nullString(dispute.Resolution))
	if err != nil {
		return fmt.Errorf("save dispute: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindVote(ctx context.Context, recallID id.RecallID, voter id.Principal) (*models.VerifierVote, error) {
	v := models.VerifierVote{RecallID: recallID, Voter: voter}
	var cast int64
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT vote, cast_at_height FROM verifier_votes WHERE recall_id = $1 AND voter = $2
	`, int64(recallID), string(voter)).Scan(&v.Vote, &cast)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verifier vote: %w", err)
	}
	v.CastAtHeight = uint64(cast)
	return &v, nil
}

// SaveVote is write-once; a duplicate (recall, voter) returns ErrConflict.
func (s *PostgresStore) SaveVote(ctx context.Context, vote *models.VerifierVote) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO verifier_votes (recall_id, voter, vote, cast_at_height)
		VALUES ($1, $2, $3, $4)
	`, int64(vote.RecallID), string(vote.Voter), vote.Vote, int64(vote.CastAtHeight))
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save verifier vote: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindMetadata(ctx context.Context, recallID id.RecallID) (*models.RecallMetadata, error) {
	m := models.RecallMetadata{RecallID: recallID}
	var linked string
	err := s.execer(ctx).QueryRowContext(ctx, `
		SELECT payload, array_to_json(linked_report_ids)::text
		FROM recall_metadata WHERE recall_id = $1
	`, int64(recallID)).Scan(&m.Payload, &linked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find recall metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(linked), &m.LinkedReportIDs); err != nil {
		return nil, fmt.Errorf("decode linked report ids: %w", err)
	}
	return &m, nil
}

// SaveMetadata is write-once per recall.
func (s *PostgresStore) SaveMetadata(ctx context.Context, metadata *models.RecallMetadata) error {
	linked := metadata.LinkedReportIDs
	if linked == nil {
		linked = []string{}
	}
	payload := metadata.Payload
	if payload == nil {
		payload = []byte{}
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO recall_metadata (recall_id, payload, linked_report_ids)
		VALUES ($1, $2, $3)
	`, int64(metadata.RecallID), payload, pq.Array(linked))
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save recall metadata: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
