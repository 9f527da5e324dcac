package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/studyeasy/studyeasy-backend/internal/database"
	"github.com/studyeasy/studyeasy-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimit provides per-IP fixed-window rate limiting backed by Redis.
// When Redis is unavailable the request is allowed through (fail open).
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()
		key := RateLimitKeyPrefix + clientip.RealClientIP(r)

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(RateLimitWindow.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"errors":{"server":"Too many requests, please try again later"}}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
