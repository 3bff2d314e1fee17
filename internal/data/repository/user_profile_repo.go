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

type UserProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
}

type userProfileRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserProfileRepository(db database.Querier, log *zap.Logger) UserProfileRepository {
	return &userProfileRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_profile")),
	}
}

func (r *userProfileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, is_artist, phone, address, birth_date,
		                           newsletter_subscription, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.IsArtist,
		profile.Phone,
		profile.Address,
		profile.BirthDate,
		profile.NewsletterSubscription,
		profile.CreatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create user profile for %s: %w", profile.UserID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create user profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create user profile for %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *userProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	query := `
		SELECT id, user_id, is_artist, phone, address, birth_date,
		       newsletter_subscription, created_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var profile entity.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.IsArtist,
		&profile.Phone,
		&profile.Address,
		&profile.BirthDate,
		&profile.NewsletterSubscription,
		&profile.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find user profile for %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *userProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET is_artist = $2, phone = $3, address = $4, birth_date = $5,
		    newsletter_subscription = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.IsArtist,
		profile.Phone,
		profile.Address,
		profile.BirthDate,
		profile.NewsletterSubscription,
	)
	if err != nil {
		r.log.Error("Failed to update user profile",
			zap.Error(err),
			zap.String("profile_id", profile.ID.String()),
		)
		return fmt.Errorf("update user profile %s: %w", profile.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user profile %s not found", profile.ID.String())
	}

	return nil
}
