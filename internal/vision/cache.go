package vision

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/metrics"
)

// ErrCacheMiss is returned by Cache.Get for an absent or expired key
var ErrCacheMiss = errors.New("cache miss")

// Cache is a key-value store with per-entry expiry
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}
	return data, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", key, err)
	}
	return nil
}

// CacheKey is the cache key of an image: "ingredient_scan:" followed by the
// hex MD5 of its bytes.
func CacheKey(image []byte) string {
	sum := md5.Sum(image)
	return "ingredient_scan:" + hex.EncodeToString(sum[:])
}

// CachedExtractor serves repeated images from a Cache. Only successful
// extractions are stored. Cache failures are logged and bypassed.
type CachedExtractor struct {
	next  Extractor
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedExtractor creates a new CachedExtractor
func NewCachedExtractor(next Extractor, cache Cache, ttl time.Duration, log *zap.Logger) *CachedExtractor {
	return &CachedExtractor{next: next, cache: cache, ttl: ttl, log: log}
}

func (c *CachedExtractor) Extract(ctx context.Context, image []byte) ([]string, error) {
	key := CacheKey(image)

	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var ingredients []string
		if err := json.Unmarshal(data, &ingredients); err == nil && len(ingredients) > 0 {
			metrics.VisionCacheHits.Inc()
			return ingredients, nil
		}
		c.log.Warn("discarding unreadable cache entry", zap.String("key", key))
		metrics.VisionCacheMisses.Inc()
	case errors.Is(err, ErrCacheMiss):
		metrics.VisionCacheMisses.Inc()
	default:
		metrics.VisionCacheErrors.WithLabelValues("get").Inc()
		c.log.Warn("vision cache read failed", zap.String("key", key), zap.Error(err))
	}

	ingredients, err := c.next.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(ingredients)
	if err == nil {
		err = c.cache.Set(ctx, key, data, c.ttl)
	}
	if err != nil {
		metrics.VisionCacheErrors.WithLabelValues("set").Inc()
		c.log.Warn("vision cache write failed", zap.String("key", key), zap.Error(err))
	}
	return ingredients, nil
}
