// Package cache memoizes listing results in a Store under stable keys.
// Store failures never fail a lookup: a read error is a miss and a write
// error is logged.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/store"
)

const keyPrefix = "yandex_reviews_"

// MainKey is the key of the main record of an organization.
func MainKey(placeID string) string {
	return keyPrefix + placeID
}

// PageKey is the key of reviews page n of an organization.
func PageKey(placeID string, page int) string {
	return fmt.Sprintf("%s%s_page_%d", keyPrefix, placeID, page)
}

// Cache wraps a Store with JSON encoding.
type Cache struct {
	store store.Store
}

// New creates a Cache on top of s.
func New(s store.Store) *Cache {
	return &Cache{store: s}
}

// Store returns the underlying store.
func (c *Cache) Store() store.Store {
	return c.store
}

// Peek decodes the value under key. The bool is false on a miss, including
// an unreadable or undecodable entry.
func Peek[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var zero T
	data, err := c.store.Get(ctx, key)
	if err != nil {
		zap.L().Warn("cache: read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if data == nil {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		zap.L().Warn("cache: undecodable entry, treating as miss", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return v, true
}

// Put encodes v and stores it under key for ttl.
func Put[T any](ctx context.Context, c *Cache, key string, v T, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("cache: encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		zap.L().Warn("cache: write failed", zap.String("key", key), zap.Error(err))
	}
}

// Remember returns the cached value under key or runs produce, caching its
// result for ttl. Errors from produce are returned and nothing is cached.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, produce func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := Peek[T](ctx, c, key); ok {
		zap.L().Debug("cache: hit", zap.String("key", key))
		return v, nil
	}
	v, err := produce(ctx)
	if err != nil {
		return v, err
	}
	Put(ctx, c, key, v, ttl)
	return v, nil
}

// Forget removes the given keys.
func (c *Cache) Forget(ctx context.Context, keys ...string) error {
	return c.store.Delete(ctx, keys...)
}
