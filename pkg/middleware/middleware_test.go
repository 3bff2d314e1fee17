package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"arto/internal/data/entity"
	"arto/pkg/cache"
	"arto/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type fakeAuth struct {
	users map[string]*entity.User
	err   error
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*entity.User, error) {
	return f.users[token], f.err
}

func TestSessionAttachesUser(t *testing.T) {
	user := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Username: "ana"}
	auth := fakeAuth{users: map[string]*entity.User{"good": user}}

	var seen *entity.User
	var seenID uuid.UUID
	h := Session(auth, "sid", zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r.Context())
		seenID, _ = utils.GetUserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "good"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seenID)

	// stale cookie is cleared and the request continues anonymously
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Nil(t, seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSessionStoreError(t *testing.T) {
	h := Session(fakeAuth{err: errors.New("db down")}, "sid", zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "x"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireLoginRedirects(t *testing.T) {
	h := RequireLogin("/login/")(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artist/edit/?tab=1", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/?next="+url.QueryEscape("/artist/edit/?tab=1"), rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRequiresStaff(t *testing.T) {
	h := Admin(zap.NewNop())(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	member := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}}
	req := httptest.NewRequest(http.MethodPost, "/admin/", nil)
	req = req.WithContext(WithCurrentUser(req.Context(), member))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	staff := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, IsStaff: true}
	req = httptest.NewRequest(http.MethodPost, "/admin/", nil)
	req = req.WithContext(WithCurrentUser(req.Context(), staff))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRF(t *testing.T) {
	var token string
	h := CSRF(false, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = utils.GetCSRFTokenFromContext(r.Context())
	}))

	// a safe request issues the cookie
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, token)

	post := func(field string, withCookie bool) int {
		form := url.Values{CSRFFieldName: {field}}
		req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			req.AddCookie(cookies[0])
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post(cookies[0].Value, true))
	assert.Equal(t, http.StatusForbidden, post("forged", true))
	assert.Equal(t, http.StatusForbidden, post(cookies[0].Value, false))
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	store := cache.NewMemoryCache()
	h := RateLimiter(store, 2, time.Minute, time.Minute, "login", zap.NewNop())(okHandler)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	blocked := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1003").Code)

	// other clients are unaffected
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
