package response

import (
	"time"

	"arto/internal/data/entity"
)

type AuthResponse struct {
	UserID      string             `json:"user_id"`
	Username    string             `json:"username"`
	DisplayName string             `json:"display_name"`
	AccountType entity.AccountType `json:"account_type"`
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

func AuthToResponse(user *entity.User, accountType entity.AccountType, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		UserID:      user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		AccountType: accountType,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
