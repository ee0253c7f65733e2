// Package store persists opaque cache entries with an expiry. The cache
// package layers JSON encoding and key naming on top.
package store

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry TTL. Get returns nil, nil for a
// missing or expired key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteExpired removes expired entries and reports how many went.
	DeleteExpired(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
