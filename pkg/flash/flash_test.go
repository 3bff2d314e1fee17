package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"arto/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlashRoundTripAcrossRequests(t *testing.T) {
	store := NewStore(cache.NewMemoryCache(), false, zap.NewNop())

	var cookie *http.Cookie
	add := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store.Add(r.Context(), LevelSuccess, "saved")
		store.Add(r.Context(), LevelWarning, "image kept")
	}))
	rec := httptest.NewRecorder()
	add.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	var popped []Message
	pop := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		popped = store.Pop(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	pop.ServeHTTP(rec, req)

	assert.Equal(t, []Message{
		{Level: LevelSuccess, Text: "saved"},
		{Level: LevelWarning, Text: "image kept"},
	}, popped)
	assert.Empty(t, rec.Result().Cookies(), "existing id is reused")

	// messages are shown once
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	pop.ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, popped)
}

func TestFlashIsolatedPerBrowser(t *testing.T) {
	store := NewStore(cache.NewMemoryCache(), false, zap.NewNop())

	add := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store.Add(r.Context(), LevelInfo, "hello")
	}))
	add.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var popped []Message
	pop := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		popped = store.Pop(r.Context())
	}))
	pop.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, popped)
}
