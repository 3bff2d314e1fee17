package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"arto/pkg/utils"

	"go.uber.org/zap"
)

const (
	CSRFCookieName = "arto_csrf"
	CSRFFieldName  = "csrfmiddlewaretoken"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRF implements the double-submit cookie check: unsafe requests must echo
// the cookie value in a form field or header.
func CSRF(secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(CSRFCookieName); err == nil && len(c.Value) == 64 {
				token = c.Value
			}

			if !isSafeMethod(r.Method) {
				submitted := r.Header.Get(CSRFHeaderName)
				if submitted == "" {
					submitted = r.FormValue(CSRFFieldName)
				}
				if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
					logger.Warn("CSRF verification failed",
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method))
					http.Error(w, "CSRF verification failed. Request aborted.", http.StatusForbidden)
					return
				}
			}

			if token == "" {
				token = newCSRFToken()
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(utils.SetCSRFTokenContext(r.Context(), token)))
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
