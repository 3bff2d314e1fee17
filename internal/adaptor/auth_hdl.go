package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"arto/internal/data/entity"
	"arto/internal/dto/request"
	"arto/internal/dto/response"
	"arto/internal/usecase"
	"arto/pkg/flash"
	"arto/pkg/middleware"
	"arto/pkg/utils"
	"arto/pkg/view"

	"go.uber.org/zap"
)

type AuthHandler struct {
	web
	service usecase.AuthService
	session utils.SessionConfig
}

func NewAuthHandler(service usecase.AuthService, base web, session utils.SessionConfig) *AuthHandler {
	return &AuthHandler{
		web:     base,
		service: service,
		session: session,
	}
}

// RegisterPage handles GET /register/
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", &view.Page{
		Title: "Join ARTO",
		Form:  &request.RegisterRequest{UserType: string(entity.AccountTypeBuyer)},
	})
}

// Register handles POST /register/
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := &request.RegisterRequest{
		Username:  strings.TrimSpace(r.FormValue("username")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Password1: r.FormValue("password1"),
		Password2: r.FormValue("password2"),
		UserType:  r.FormValue("user_type"),
	}

	resp, err := h.service.Register(r.Context(), req, sessionMeta(r))

	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		// never echo passwords back
		req.Password1, req.Password2 = "", ""
		h.render(w, r, http.StatusOK, "register", &view.Page{
			Title:  "Join ARTO",
			Form:   req,
			Errors: verr.Fields,
		})
		return

	case errors.Is(err, usecase.ErrProvisioning):
		h.log.Error("Registration rolled back", zap.Error(err), zap.String("username", req.Username))
		h.errorPage(w, r, http.StatusInternalServerError, "Registration failed",
			"We could not create your account. Nothing was saved, please try again.")
		return

	case err != nil:
		h.handleServiceError(w, r, err, "register")
		return
	}

	h.setSessionCookie(w, resp)

	if resp.AccountType == entity.AccountTypeArtist {
		h.flash.Add(r.Context(), flash.LevelSuccess, fmt.Sprintf(
			"Welcome to ARTO, %s! Your artist profile has been created. Complete your profile to start selling.", resp.Username))
	} else {
		h.flash.Add(r.Context(), flash.LevelSuccess, fmt.Sprintf(
			"Welcome to ARTO, %s! Start exploring amazing artworks.", resp.Username))
	}

	h.redirect(w, r, "/dashboard/")
}

// LoginPage handles GET /login/
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	next, _ := localRedirect(r.URL.Query().Get("next"))
	h.render(w, r, http.StatusOK, "login", &view.Page{
		Title: "Log in",
		Form:  &request.LoginRequest{},
		Data:  next,
	})
}

// Login handles POST /login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := &request.LoginRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	next, hasNext := localRedirect(r.FormValue("next"))

	resp, err := h.service.Login(r.Context(), req, sessionMeta(r))
	if err != nil {
		page := &view.Page{
			Title: "Log in",
			Form:  &request.LoginRequest{Username: req.Username},
			Data:  next,
		}

		var verr *utils.ValidationError
		switch {
		case errors.As(err, &verr):
			page.Errors = verr.Fields
		case errors.Is(err, usecase.ErrInvalidCredentials):
			page.Errors = map[string]string{"__all__": usecase.InvalidLoginMessage}
		default:
			h.handleServiceError(w, r, err, "login")
			return
		}

		h.render(w, r, http.StatusOK, "login", page)
		return
	}

	h.setSessionCookie(w, resp)
	h.flash.Add(r.Context(), flash.LevelSuccess, fmt.Sprintf("Welcome back, %s!", resp.DisplayName))

	if hasNext {
		h.redirect(w, r, next)
		return
	}
	h.redirect(w, r, "/dashboard/")
}

// Logout handles GET and POST /logout/
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			h.log.Error("Failed to revoke session on logout", zap.Error(err))
		}
	}

	middleware.ClearCookie(w, h.session.CookieName)
	h.flash.Add(r.Context(), flash.LevelInfo, "You have successfully logged out. Come back soon!")
	h.redirect(w, r, "/")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, resp *response.AuthResponse) {
	if resp.Token == "" {
		// the account exists but no session could be issued; the user logs in manually
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
