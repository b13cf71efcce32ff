package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
)

const reportColumns = `id, reporter_id, message_id, target_user_id, reason, status, reviewer_id, reviewed_at, created_at`

// ModerationRepository stores blocks and the report review workflow.
type ModerationRepository interface {
	CreateReport(ctx context.Context, reporterID int, messageID, targetUserID *int, reason string) (models.Report, error)
	GetReport(ctx context.Context, reportID int) (models.Report, error)
	ReviewReport(ctx context.Context, reportID, reviewerID int, decision string) (models.Report, error)
	CreateBlock(ctx context.Context, blockerID, blockedID int, reason string) error
	BlockExistsBetween(ctx context.Context, userA, userB int) (bool, error)
}

// ModerationRepo is a sqlx-backed repository.
type ModerationRepo struct {
	db *sqlx.DB
}

// NewModerationRepo constructs ModerationRepo.
func NewModerationRepo(db *sqlx.DB) *ModerationRepo {
	return &ModerationRepo{db: db}
}

// CreateReport inserts a pending report.
func (r *ModerationRepo) CreateReport(ctx context.Context, reporterID int, messageID, targetUserID *int, reason string) (models.Report, error) {
	var report models.Report
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO reports (reporter_id, message_id, target_user_id, reason)
         VALUES ($1, $2, $3, $4) RETURNING `+reportColumns,
		reporterID, messageID, targetUserID, reason).StructScan(&report)
	if err != nil {
		return models.Report{}, apperrors.Transient(err)
	}
	return report, nil
}

// GetReport fetches a report by id.
func (r *ModerationRepo) GetReport(ctx context.Context, reportID int) (models.Report, error) {
	var report models.Report
	err := r.db.GetContext(ctx, &report, `SELECT `+reportColumns+` FROM reports WHERE id=$1`, reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, apperrors.NotFound("report")
	}
	if err != nil {
		return models.Report{}, apperrors.Transient(err)
	}
	return report, nil
}

// ReviewReport transitions pending -> approved|rejected, recording the
// reviewer and timestamp. The status guard in the UPDATE keeps two
// concurrent reviews from both succeeding.
func (r *ModerationRepo) ReviewReport(ctx context.Context, reportID, reviewerID int, decision string) (models.Report, error) {
	var report models.Report
	err := r.db.QueryRowxContext(ctx,
		`UPDATE reports SET status=$3, reviewer_id=$2, reviewed_at = NOW()
         WHERE id=$1 AND status='pending' RETURNING `+reportColumns,
		reportID, reviewerID, decision).StructScan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetReport(ctx, reportID); getErr != nil {
			return models.Report{}, getErr
		}
		return models.Report{}, apperrors.Validation("report already reviewed")
	}
	if err != nil {
		return models.Report{}, apperrors.Transient(err)
	}
	return report, nil
}

// CreateBlock records a directed block edge. Re-blocking refreshes the reason.
func (r *ModerationRepo) CreateBlock(ctx context.Context, blockerID, blockedID int, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blocks (blocker_id, blocked_id, reason) VALUES ($1, $2, $3)
         ON CONFLICT (blocker_id, blocked_id) DO UPDATE SET reason = EXCLUDED.reason`,
		blockerID, blockedID, reason)
	if err != nil {
		return apperrors.Transient(err)
	}
	return nil
}

// BlockExistsBetween reports whether either user blocks the other.
func (r *ModerationRepo) BlockExistsBetween(ctx context.Context, userA, userB int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM blocks
         WHERE (blocker_id=$1 AND blocked_id=$2) OR (blocker_id=$2 AND blocked_id=$1))`,
		userA, userB)
	if err != nil {
		return false, apperrors.Transient(err)
	}
	return exists, nil
}
