// Package cache provides the query cache backing the data-fetching layer.
// Entries are opaque byte slices (JSON-encoded by the caller) so the
// in-memory and Redis backends stay interchangeable.
package cache

import (
	"context"
	"time"
)

// Store is the replaceable cache dependency. Mutations invalidate entries
// through Delete/DeleteByPrefix; they never write through.
type Store interface {
	// Get returns the cached value for key. The second return value is
	// false on a cache miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key with the given TTL. A zero TTL means the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Close releases any resources held by the store.
	Close() error
}

// Stats reports hit/miss counters for monitoring
type Stats struct {
	Hits   int64
	Misses int64
}
