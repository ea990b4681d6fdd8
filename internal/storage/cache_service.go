package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CacheService provides TTL-scoped caching for repeated identical
// collaborator queries (reference price, narrative analyses, assembled
// personas). Cache state never affects analytic correctness, only latency.
type CacheService struct {
	redis *RedisCache
}

// NewCacheService creates a new cache service
func NewCacheService(redis *RedisCache) *CacheService {
	return &CacheService{redis: redis}
}

// CacheKeyType represents different types of cache keys
type CacheKeyType string

const (
	// CacheKeyPrice is for the native-asset reference price
	CacheKeyPrice CacheKeyType = "price"
	// CacheKeyNarrative is for narrative generator responses
	CacheKeyNarrative CacheKeyType = "narrative"
	// CacheKeyPersona is for assembled persona documents
	CacheKeyPersona CacheKeyType = "persona"
)

// Key generates a cache key for a given type and parameters.
// Format: <type>:<param1>:<param2>:...
func Key(keyType CacheKeyType, params ...string) string {
	normalized := make([]string, len(params))
	for i, param := range params {
		normalized[i] = strings.ToLower(param)
	}
	parts := append([]string{string(keyType)}, normalized...)
	return strings.Join(parts, ":")
}

// Set serializes a value to JSON and stores it with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.redis.Set(ctx, key, data, ttl)
}

// Get retrieves a value from cache and deserializes it into dest. The first
// return value reports whether the key was present.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		if IsMiss(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

// Invalidate removes the given keys.
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) error {
	return c.redis.Del(ctx, keys...)
}
