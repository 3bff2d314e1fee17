package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"arto/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

const (
	CookieName = "arto_flash"
	namespace  = "flash"
	defaultTTL = 5 * time.Minute
)

type ctxKey struct{}

// Store queues one-shot messages per browser. The browser is identified by
// an opaque cookie; the messages live in the cache until popped or expired.
type Store struct {
	cache  cache.Store
	ttl    time.Duration
	secure bool
	log    *zap.Logger
}

func NewStore(c cache.Store, secure bool, log *zap.Logger) *Store {
	return &Store{
		cache:  c,
		ttl:    defaultTTL,
		secure: secure,
		log:    log.With(zap.String("component", "flash")),
	}
}

// Middleware makes sure every request carries a flash id.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func idFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Add queues a message for the next rendered page.
func (s *Store) Add(ctx context.Context, level Level, text string) {
	id := idFromContext(ctx)
	if id == "" {
		s.log.Warn("Flash message dropped, no flash id in context", zap.String("text", text))
		return
	}

	messages, err := s.load(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load flash messages", zap.Error(err))
	}
	messages = append(messages, Message{Level: level, Text: text})

	payload, err := json.Marshal(messages)
	if err != nil {
		s.log.Warn("Failed to encode flash messages", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, namespace, id, string(payload), s.ttl); err != nil {
		s.log.Warn("Failed to store flash messages", zap.Error(err))
	}
}

// Pop returns and clears the queued messages.
func (s *Store) Pop(ctx context.Context) []Message {
	id := idFromContext(ctx)
	if id == "" {
		return nil
	}

	messages, err := s.load(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load flash messages", zap.Error(err))
		return nil
	}
	if len(messages) == 0 {
		return nil
	}
	if err := s.cache.Delete(ctx, namespace, id); err != nil {
		s.log.Warn("Failed to clear flash messages", zap.Error(err))
	}
	return messages
}

func (s *Store) load(ctx context.Context, id string) ([]Message, error) {
	raw, err := s.cache.Get(ctx, namespace, id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
