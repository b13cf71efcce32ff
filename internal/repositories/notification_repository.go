package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
)

// NotificationRepository stores per-user notification records.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListForUser(ctx context.Context, userID int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int) error
}

// NotificationRepo is a sqlx-backed repository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreateNotification inserts a notification row.
func (r *NotificationRepo) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO notifications (recipient_id, type, title, body, link)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, recipient_id, type, title, body, link, read, created_at`,
		n.RecipientID, n.Type, n.Title, n.Body, n.Link).StructScan(&n)
	if err != nil {
		return models.Notification{}, apperrors.Transient(err)
	}
	return n, nil
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.SelectContext(ctx, &list,
		`SELECT id, recipient_id, type, title, body, link, read, created_at
         FROM notifications WHERE recipient_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return list, nil
}

// MarkRead flips the read flag; recipient-only, idempotent.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, userID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id=$1 AND recipient_id=$2`,
		notificationID, userID)
	if err != nil {
		return apperrors.Transient(err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return apperrors.Transient(err)
	}
	if count == 0 {
		return apperrors.NotFound("notification")
	}
	return nil
}
