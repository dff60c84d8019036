package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
	"github.com/pageza/pantrymatch/backend/internal/metrics"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter is a fixed-window per-user limiter backed by Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		log:    log,
	}
}

// NewScanRateLimiter limits ingredient image scans per user
func NewScanRateLimiter(redisClient *redis.Client, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:ingredient_scan",
	}, log)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware. Requests are let through when Redis is
// unavailable.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			AbortWithError(c, apperror.Unauthorized("user not authenticated"), false)
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			rl.log.Warn("rate limit check failed", zap.String("prefix", rl.config.KeyPrefix), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			metrics.APIRateLimitHits.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			AbortWithError(c, apperror.New(
				apperror.CodeRateLimited,
				fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				http.StatusTooManyRequests,
				nil,
			), false)
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given user is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	allowed := count <= rl.config.Limit

	return allowed, remaining, resetTime, nil
}
