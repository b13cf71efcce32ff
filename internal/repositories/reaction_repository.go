package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
)

// ReactionRepository defines interactions with the reaction ledger.
type ReactionRepository interface {
	Toggle(ctx context.Context, messageID, userID int, emoji string) (bool, error)
	ListForMessage(ctx context.Context, messageID int) ([]models.Reaction, error)
	ListForMessages(ctx context.Context, messageIDs []int) ([]models.Reaction, error)
}

// ReactionRepo is a sqlx-backed repository.
type ReactionRepo struct {
	db *sqlx.DB
}

// NewReactionRepo constructs ReactionRepo.
func NewReactionRepo(db *sqlx.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Toggle removes the (message, user, emoji) triple if present, otherwise
// inserts it. Returns whether the reaction is present afterwards. Delete
// first, then conditional insert: under the primary-key constraint two rapid
// toggles from the same user collapse to at most one row, never two.
func (r *ReactionRepo) Toggle(ctx context.Context, messageID, userID int, emoji string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reactions WHERE message_id=$1 AND user_id=$2 AND emoji=$3`,
		messageID, userID, emoji)
	if err != nil {
		return false, apperrors.Transient(err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.Transient(err)
	}
	if removed > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reactions (message_id, user_id, emoji) VALUES ($1, $2, $3)
         ON CONFLICT (message_id, user_id, emoji) DO NOTHING`,
		messageID, userID, emoji)
	if err != nil {
		return false, apperrors.Transient(err)
	}
	return true, nil
}

// ListForMessage returns all reactions on one message.
func (r *ReactionRepo) ListForMessage(ctx context.Context, messageID int) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.SelectContext(ctx, &reactions,
		`SELECT message_id, user_id, emoji, created_at FROM reactions
         WHERE message_id=$1 ORDER BY created_at ASC, user_id ASC`, messageID)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return reactions, nil
}

// ListForMessages returns reactions for a batch of messages in one query.
func (r *ReactionRepo) ListForMessages(ctx context.Context, messageIDs []int) ([]models.Reaction, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT message_id, user_id, emoji, created_at FROM reactions
         WHERE message_id IN (?) ORDER BY created_at ASC, user_id ASC`, messageIDs)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	query = r.db.Rebind(query)

	var reactions []models.Reaction
	if err := r.db.SelectContext(ctx, &reactions, query, args...); err != nil {
		return nil, apperrors.Transient(err)
	}
	return reactions, nil
}
