package security

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts writes per client IP in fixed Redis windows.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow records one hit for key and reports whether it is within the limit.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.redis.Expire(ctx, key, r.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(r.limit), nil
}

// Middleware rejects crawlers and clients over the limit. Redis failures let
// the request through.
func (r *RateLimiter) Middleware(e *core.RequestEvent) error {
	if isSuspiciousUserAgent(e.Request.UserAgent()) {
		return apis.NewForbiddenError("Access denied", nil)
	}

	ip := e.RemoteIP()
	allowed, err := r.Allow(e.Request.Context(), fmt.Sprintf("ratelimit:%s", ip))
	if err != nil {
		r.logger.Warn("rate limiter unavailable", "ip", ip, "error", err)
		return e.Next()
	}
	if !allowed {
		return apis.NewTooManyRequestsError("Trop de requêtes, réessaie dans un instant.", nil)
	}
	return e.Next()
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
