package middleware

import (
	"context"
	"net/http"
	"net/url"

	"arto/internal/data/entity"
	"arto/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a session token to an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type currentUserKey struct{}

// CurrentUser returns the account attached by Session, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *entity.User {
	user, _ := ctx.Value(currentUserKey{}).(*entity.User)
	return user
}

// WithCurrentUser attaches an account the way Session does.
func WithCurrentUser(ctx context.Context, user *entity.User) context.Context {
	ctx = context.WithValue(ctx, currentUserKey{}, user)
	return utils.SetUserContext(ctx, user.ID)
}

// Session resolves the session cookie. Anonymous requests pass through
// untouched; a stale cookie is cleared.
func Session(auth Authenticator, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := cookie.Value
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if user == nil {
				logger.Debug("Invalid or expired session cookie")
				ClearCookie(w, cookieName)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCurrentUser(r.Context(), user)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to loginPath with a next parameter.
func RequireLogin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin lets only staff accounts through. It expects Session to have run.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !user.IsStaff {
				logger.Warn("Admin check: non-staff access attempt",
					zap.String("user_id", user.ID.String()),
					zap.String("path", r.URL.Path))
				http.Error(w, "Staff access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClearCookie expires a cookie set on the root path.
func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
