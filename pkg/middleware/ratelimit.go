package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"arto/pkg/cache"
	"arto/pkg/utils"

	"go.uber.org/zap"
)

const rateLimitNamespace = "ratelimit"

// RateLimiter counts requests per client in fixed windows and blocks a client
// for blockDuration once it goes over limit. Cache errors fail open.
func RateLimiter(store cache.Store, limit int, window, blockDuration time.Duration, keyPrefix string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			// Prefer the account, fall back to the client address
			var clientID string
			if userID, ok := utils.GetUserIDFromContext(ctx); ok {
				clientID = "uid:" + userID.String()
			} else {
				clientID = "ip:" + clientIP(r)
			}

			key := keyPrefix + ":" + clientID
			blockKey := key + ":blocked"

			if blocked, err := store.Get(ctx, rateLimitNamespace, blockKey); err == nil && blocked == "1" {
				ttl, _ := store.GetTTL(ctx, rateLimitNamespace, blockKey)
				tooManyRequests(w, ttl)
				return
			}

			count, err := store.IncrWithExpire(ctx, rateLimitNamespace, key, window)
			if err != nil {
				logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				if err := store.Set(ctx, rateLimitNamespace, blockKey, "1", blockDuration); err != nil {
					logger.Warn("Failed to record rate limit block", zap.Error(err))
				}
				logger.Warn("Rate limit exceeded",
					zap.String("client", clientID),
					zap.String("path", r.URL.Path))
				tooManyRequests(w, blockDuration)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-int(count)))

			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	http.Error(w, "Too many requests. Try again in "+(time.Duration(seconds)*time.Second).String()+".", http.StatusTooManyRequests)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
