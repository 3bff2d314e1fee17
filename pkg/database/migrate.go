package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL,
		password TEXT NOT NULL,
		first_name VARCHAR(30) NOT NULL DEFAULT '',
		last_name VARCHAR(30) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token UUID NOT NULL UNIQUE,
		user_agent TEXT,
		ip_address TEXT,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		is_artist BOOLEAN NOT NULL DEFAULT FALSE,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		birth_date DATE,
		newsletter_subscription BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS artist_profiles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		artist_name VARCHAR(100) NOT NULL,
		bio VARCHAR(500) NOT NULL DEFAULT '',
		specialty VARCHAR(20) NOT NULL DEFAULT 'other',
		experience_level VARCHAR(20) NOT NULL DEFAULT 'beginner',
		website VARCHAR(200) NOT NULL DEFAULT '',
		instagram VARCHAR(100) NOT NULL DEFAULT '',
		facebook VARCHAR(200) NOT NULL DEFAULT '',
		twitter VARCHAR(100) NOT NULL DEFAULT '',
		city VARCHAR(100) NOT NULL DEFAULT '',
		country VARCHAR(100) NOT NULL DEFAULT '',
		profile_image VARCHAR(255),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		accepts_commissions BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS artist_profiles_created_at_idx ON artist_profiles (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS artist_profiles_specialty_idx ON artist_profiles (specialty);`,
	`CREATE INDEX IF NOT EXISTS sessions_user_id_idx ON sessions (user_id);`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db Querier) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
