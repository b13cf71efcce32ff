package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
)

const messageColumns = `id, sender_id, receiver_id, content, read, edited, edited_at, deleted, created_at`

// MessageRepository defines interactions with the append-only message log.
type MessageRepository interface {
	CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.Message, error)
	ListThread(ctx context.Context, userA, userB int) ([]models.Message, error)
	ListForUser(ctx context.Context, userID int) ([]models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	MarkThreadRead(ctx context.Context, viewerID, counterpartID int) error
	SoftDelete(ctx context.Context, messageID, requestorID int) error
	EditMessage(ctx context.Context, messageID, requestorID int, content string) (models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to the log with read=false, deleted=false.
func (r *MessageRepo) CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content) VALUES ($1, $2, $3) RETURNING `+messageColumns,
		senderID, receiverID, content).StructScan(&msg)
	if err != nil {
		return models.Message{}, apperrors.Transient(err)
	}
	return msg, nil
}

// ListThread returns all non-deleted messages between the two users ordered
// oldest first, id as tie-break on equal timestamps.
func (r *MessageRepo) ListThread(ctx context.Context, userA, userB int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
        WHERE deleted = FALSE
        AND ((sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1))
        ORDER BY created_at ASC, id ASC`
	var msgs []models.Message
	if err := r.db.SelectContext(ctx, &msgs, query, userA, userB); err != nil {
		return nil, apperrors.Transient(err)
	}
	return msgs, nil
}

// ListForUser returns every non-deleted message the user sent or received,
// the input of conversation aggregation.
func (r *MessageRepo) ListForUser(ctx context.Context, userID int) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
        WHERE deleted = FALSE AND (sender_id=$1 OR receiver_id=$1)
        ORDER BY created_at ASC, id ASC`
	var msgs []models.Message
	if err := r.db.SelectContext(ctx, &msgs, query, userID); err != nil {
		return nil, apperrors.Transient(err)
	}
	return msgs, nil
}

// GetMessage retrieves a single message, soft-deleted ones included. Callers
// that must not see deleted content check the flag themselves; the report
// workflow needs the row either way.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT `+messageColumns+` FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, apperrors.NotFound("message")
	}
	if err != nil {
		return models.Message{}, apperrors.Transient(err)
	}
	return msg, nil
}

// MarkThreadRead flips read=true on all unread messages addressed to the
// viewer from the counterpart. Idempotent: a second call matches no rows.
func (r *MessageRepo) MarkThreadRead(ctx context.Context, viewerID, counterpartID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read = TRUE
         WHERE receiver_id=$1 AND sender_id=$2 AND read = FALSE AND deleted = FALSE`,
		viewerID, counterpartID)
	if err != nil {
		return apperrors.Transient(err)
	}
	return nil
}

// SoftDelete marks a message deleted. The conditional UPDATE enforces
// sender-only deletion server-side: zero affected rows means the message is
// missing, already deleted, or not owned by the requestor.
func (r *MessageRepo) SoftDelete(ctx context.Context, messageID, requestorID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET deleted = TRUE WHERE id=$1 AND sender_id=$2 AND deleted = FALSE`,
		messageID, requestorID)
	if err != nil {
		return apperrors.Transient(err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return apperrors.Transient(err)
	}
	if count == 0 {
		msg, getErr := r.GetMessage(ctx, messageID)
		if getErr != nil || msg.Deleted {
			return apperrors.NotFound("message")
		}
		return apperrors.Permission("only the sender may delete a message")
	}
	return nil
}

// EditMessage replaces the content of a sender-owned, non-deleted message.
func (r *MessageRepo) EditMessage(ctx context.Context, messageID, requestorID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`UPDATE messages SET content=$3, edited = TRUE, edited_at = NOW()
         WHERE id=$1 AND sender_id=$2 AND deleted = FALSE
         RETURNING `+messageColumns,
		messageID, requestorID, content).StructScan(&msg)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetMessage(ctx, messageID)
		if getErr != nil || existing.Deleted {
			return models.Message{}, apperrors.NotFound("message")
		}
		return models.Message{}, apperrors.Permission("only the sender may edit a message")
	}
	if err != nil {
		return models.Message{}, apperrors.Transient(err)
	}
	return msg, nil
}
