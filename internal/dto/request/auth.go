package request

import (
	"arto/internal/data/entity"
	"arto/pkg/utils"
)

func init() {
	utils.RegisterValidation("account_type", func(value string) bool {
		_, ok := entity.ParseAccountType(value)
		return ok
	})
}

type RegisterRequest struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"required,email,max=254"`
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"required,max=30"`
	Password1 string `form:"password1" validate:"required"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
	UserType  string `form:"user_type" validate:"account_type"`
}

// AccountType resolves UserType; empty input means buyer.
func (r *RegisterRequest) AccountType() entity.AccountType {
	t, ok := entity.ParseAccountType(r.UserType)
	if !ok {
		return entity.AccountTypeBuyer
	}
	return t
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// SessionMeta describes the client a session is issued to.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}
