// Package cache provides a Redis-backed cache for full pipeline results.
// A cached result is the complete SearchResult; the pipeline itself is
// cheap, so the cache exists to save provider quota, not CPU.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

const keyPrefix = "search:"

// RedisCache caches search results keyed by a hash of the parameters.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns the cache. The URL accepts the
// redis:// and rediss:// schemes.
func New(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opt), ttl: ttl}, nil
}

// Key derives a stable cache key from search parameters. Two parameter
// sets produce the same key iff their canonical JSON forms match.
func Key(params models.SearchParams) string {
	canonical, err := json.Marshal(params)
	if err != nil {
		return keyPrefix + "invalid"
	}
	sum := sha256.Sum256(canonical)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns a cached result, or false on miss or any Redis error.
// Cache failures never fail a search.
func (c *RedisCache) Get(ctx context.Context, params models.SearchParams) (*models.SearchResult, bool) {
	data, err := c.client.Get(ctx, Key(params)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var result models.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Log.Warn("Cache entry corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	return &result, true
}

// Set stores a result with the configured TTL. Failures are logged and
// swallowed.
func (c *RedisCache) Set(ctx context.Context, params models.SearchParams, result *models.SearchResult) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Log.Warn("Cache serialization failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Key(params), data, c.ttl).Err(); err != nil {
		logger.Log.Warn("Cache write failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
