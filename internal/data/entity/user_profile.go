package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile extends an account with buyer-side details. Every account has exactly one.
type UserProfile struct {
	BaseSimple
	UserID                 uuid.UUID  `db:"user_id"`
	IsArtist               bool       `db:"is_artist"`
	Phone                  string     `db:"phone"`
	Address                string     `db:"address"`
	BirthDate              *time.Time `db:"birth_date"`
	NewsletterSubscription bool       `db:"newsletter_subscription"`
}

// NewUserProfile returns a profile with the column defaults applied.
func NewUserProfile(userID uuid.UUID, isArtist bool, now time.Time) *UserProfile {
	return &UserProfile{
		BaseSimple: BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:                 userID,
		IsArtist:               isArtist,
		NewsletterSubscription: true,
	}
}
