package repository

import (
	"context"
	"errors"
	"fmt"

	"arto/internal/data/entity"
	"arto/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ArtistProfileRepository interface {
	Create(ctx context.Context, profile *entity.ArtistProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ArtistProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ArtistProfile, error)
	// FindAll returns profiles newest first, restricted to specialty when it is non-nil.
	FindAll(ctx context.Context, specialty *entity.Specialty) ([]*entity.ArtistProfile, error)
	FindVerified(ctx context.Context, limit int) ([]*entity.ArtistProfile, error)
	Update(ctx context.Context, profile *entity.ArtistProfile) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type artistProfileRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewArtistProfileRepository(db database.Querier, log *zap.Logger) ArtistProfileRepository {
	return &artistProfileRepository{
		db:  db,
		log: log.With(zap.String("repository", "artist_profile")),
	}
}

const artistProfileColumns = `id, user_id, artist_name, bio, specialty, experience_level,
		       website, instagram, facebook, twitter, city, country,
		       profile_image, is_verified, accepts_commissions, created_at, updated_at`

func (r *artistProfileRepository) Create(ctx context.Context, profile *entity.ArtistProfile) error {
	query := `
		INSERT INTO artist_profiles (id, user_id, artist_name, bio, specialty, experience_level,
		                             website, instagram, facebook, twitter, city, country,
		                             profile_image, is_verified, accepts_commissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.ArtistName,
		profile.Bio,
		profile.Specialty,
		profile.ExperienceLevel,
		profile.Website,
		profile.Instagram,
		profile.Facebook,
		profile.Twitter,
		profile.City,
		profile.Country,
		profile.ProfileImage,
		profile.IsVerified,
		profile.AcceptsCommissions,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create artist profile for %s: %w", profile.UserID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create artist profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create artist profile for %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *artistProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ArtistProfile, error) {
	query := `SELECT ` + artistProfileColumns + ` FROM artist_profiles WHERE id = $1`

	profile, err := scanArtistProfile(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find artist profile by ID",
			zap.Error(err),
			zap.String("profile_id", id.String()),
		)
		return nil, fmt.Errorf("find artist profile by ID %s: %w", id.String(), err)
	}

	return profile, nil
}

func (r *artistProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ArtistProfile, error) {
	query := `SELECT ` + artistProfileColumns + ` FROM artist_profiles WHERE user_id = $1`

	profile, err := scanArtistProfile(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find artist profile by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find artist profile by user %s: %w", userID.String(), err)
	}

	return profile, nil
}

func (r *artistProfileRepository) FindAll(ctx context.Context, specialty *entity.Specialty) ([]*entity.ArtistProfile, error) {
	query := `SELECT ` + artistProfileColumns + ` FROM artist_profiles`
	var args []any

	if specialty != nil {
		query += ` WHERE specialty = $1`
		args = append(args, *specialty)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list artist profiles", zap.Error(err))
		return nil, fmt.Errorf("find all artist profiles: %w", err)
	}
	defer rows.Close()

	return collectArtistProfiles(rows)
}

func (r *artistProfileRepository) FindVerified(ctx context.Context, limit int) ([]*entity.ArtistProfile, error) {
	query := `SELECT ` + artistProfileColumns + `
		FROM artist_profiles
		WHERE is_verified = TRUE
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list verified artist profiles", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find verified artist profiles limit %d: %w", limit, err)
	}
	defer rows.Close()

	return collectArtistProfiles(rows)
}

func (r *artistProfileRepository) Update(ctx context.Context, profile *entity.ArtistProfile) error {
	query := `
		UPDATE artist_profiles
		SET artist_name = $2, bio = $3, specialty = $4, experience_level = $5,
		    website = $6, instagram = $7, facebook = $8, twitter = $9,
		    city = $10, country = $11, profile_image = $12,
		    accepts_commissions = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.ArtistName,
		profile.Bio,
		profile.Specialty,
		profile.ExperienceLevel,
		profile.Website,
		profile.Instagram,
		profile.Facebook,
		profile.Twitter,
		profile.City,
		profile.Country,
		profile.ProfileImage,
		profile.AcceptsCommissions,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update artist profile",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
		)
		return fmt.Errorf("update artist profile %s: %w", profile.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("artist profile %s not found", profile.ID.String())
	}

	return nil
}

func (r *artistProfileRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE artist_profiles SET is_verified = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		r.log.Error("Failed to set artist verification",
			zap.Error(err),
			zap.String("profile_id", id.String()),
		)
		return fmt.Errorf("set verified %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("artist profile %s not found", id.String())
	}

	return nil
}

func collectArtistProfiles(rows pgx.Rows) ([]*entity.ArtistProfile, error) {
	var profiles []*entity.ArtistProfile
	for rows.Next() {
		profile, err := scanArtistProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist profile rows: %w", err)
	}

	return profiles, nil
}

// scanArtistProfile works for both pgx.Row and pgx.Rows.
func scanArtistProfile(row pgx.Row) (*entity.ArtistProfile, error) {
	var profile entity.ArtistProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ArtistName,
		&profile.Bio,
		&profile.Specialty,
		&profile.ExperienceLevel,
		&profile.Website,
		&profile.Instagram,
		&profile.Facebook,
		&profile.Twitter,
		&profile.City,
		&profile.Country,
		&profile.ProfileImage,
		&profile.IsVerified,
		&profile.AcceptsCommissions,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
