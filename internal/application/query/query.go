// Package query is the data-fetching layer between services and the cache:
// reads go through keyed cached queries, mutations declare which key
// prefixes they invalidate on success. The cache backend is an injected
// dependency, not a hardwired store.
package query

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/softpan/console/internal/infrastructure/cache"
)

// Client coordinates cached queries and invalidating mutations
type Client struct {
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// ClientOption is a functional option for configuring the client
type ClientOption func(*Client)

// WithTTL sets the default TTL for cached query results
func WithTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.ttl = ttl
	}
}

// WithLogger sets the logger for the client
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a query client over the given cache store
func NewClient(store cache.Store, opts ...ClientOption) *Client {
	c := &Client{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a cache key from its parts, e.g. Key("ventas","pendientes")
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Invalidate removes every cached entry under the given key prefixes
func (c *Client) Invalidate(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.store.DeleteByPrefix(ctx, prefix); err != nil {
			c.logger.Warn("cache invalidation failed",
				zap.String("prefix", prefix),
				zap.Error(err),
			)
		}
	}
}

// Fetch returns the cached value under key, or runs fn and caches its
// result. Cache failures degrade to a plain fetch; they never fail the read.
func Fetch[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// A corrupt entry is dropped and refetched
		_ = c.store.Delete(ctx, key)
	}

	value, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// Mutate runs a mutation and, only on success, invalidates the declared key
// prefixes so subsequent reads observe the updated server state. A failed
// mutation leaves the cache untouched.
func Mutate[T any](ctx context.Context, c *Client, fn func(context.Context) (T, error), invalidates ...string) (T, error) {
	var zero T
	value, err := fn(ctx)
	if err != nil {
		return zero, err
	}
	c.Invalidate(ctx, invalidates...)
	return value, nil
}
