package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/apperrors"
	"messaging-service/internal/models"
)

// ProfileRepository reads display identity owned by the surrounding portal.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int) (models.Profile, error)
	BulkProfiles(ctx context.Context, userIDs []int) (map[int]models.Profile, error)
}

// ProfileRepo is a sqlx-backed repository.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo constructs ProfileRepo.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetProfile fetches one profile.
func (r *ProfileRepo) GetProfile(ctx context.Context, userID int) (models.Profile, error) {
	var p models.Profile
	err := r.db.GetContext(ctx, &p,
		`SELECT id, username, display_name, avatar_url FROM profiles WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, apperrors.NotFound("profile")
	}
	if err != nil {
		return models.Profile{}, apperrors.Transient(err)
	}
	return p, nil
}

// BulkProfiles fetches multiple profiles in one query, keyed by id. Missing
// ids are simply absent from the result.
func (r *ProfileRepo) BulkProfiles(ctx context.Context, userIDs []int) (map[int]models.Profile, error) {
	if len(userIDs) == 0 {
		return map[int]models.Profile{}, nil
	}
	query, args, err := sqlx.In(
		`SELECT id, username, display_name, avatar_url FROM profiles WHERE id IN (?)`, userIDs)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	query = r.db.Rebind(query)

	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, apperrors.Transient(err)
	}

	byID := make(map[int]models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return byID, nil
}
