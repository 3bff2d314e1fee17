package entity

import (
	"strings"
	"time"
)

type AccountType string

const (
	AccountTypeBuyer  AccountType = "buyer"
	AccountTypeArtist AccountType = "artist"
)

// ParseAccountType maps a form value to an account type. Empty input falls back to buyer.
func ParseAccountType(value string) (AccountType, bool) {
	switch AccountType(strings.TrimSpace(value)) {
	case "", AccountTypeBuyer:
		return AccountTypeBuyer, true
	case AccountTypeArtist:
		return AccountTypeArtist, true
	default:
		return "", false
	}
}

func (t AccountType) Label() string {
	switch t {
	case AccountTypeArtist:
		return "Artist/Seller"
	case AccountTypeBuyer:
		return "Art Collector/Buyer"
	default:
		return string(t)
	}
}

type User struct {
	BaseNoDelete
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	IsActive     bool       `db:"is_active"`
	IsStaff      bool       `db:"is_staff"`
	LastLogin    *time.Time `db:"last_login"`
}

// FullName joins first and last name, trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName is the first name when set, the username otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
