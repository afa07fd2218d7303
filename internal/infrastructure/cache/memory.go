package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCleanupInterval = 30 * time.Second
	defaultMemoryTTL       = 5 * time.Minute
)

// Memory implements Store using process-local storage. It is the default
// backend: cheap, needs no external service, and query staleness is bounded
// by the entry TTL.
type Memory struct {
	entries sync.Map // map[string]*memoryEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryOption is a functional option for configuring the in-memory store
type MemoryOption func(*Memory)

// WithMemoryTTL sets the default entry lifetime
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMemoryLogger sets the logger for the store
func WithMemoryLogger(log *zap.Logger) MemoryOption {
	return func(m *Memory) {
		m.logger = log
	}
}

// NewMemory creates an in-memory cache store
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl:    defaultMemoryTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupExpired()

	return m
}

// Get retrieves a value, treating expired entries as misses
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.entries.Load(key)
	if !ok {
		atomic.AddInt64(&m.misses, 1)
		return nil, false, nil
	}
	entry := v.(*memoryEntry)
	if entry.isExpired() {
		m.entries.Delete(key)
		atomic.AddInt64(&m.misses, 1)
		return nil, false, nil
	}
	atomic.AddInt64(&m.hits, 1)
	return entry.value, true, nil
}

// Set stores a value with the given TTL
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.entries.Store(key, &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a single entry
func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

// DeleteByPrefix removes every entry whose key starts with prefix
func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	m.entries.Range(func(k, _ any) bool {
		if strings.HasPrefix(k.(string), prefix) {
			m.entries.Delete(k)
		}
		return true
	})
	return nil
}

// Close stops the cleanup goroutine
func (m *Memory) Close() error {
	if atomic.CompareAndSwapInt32(&m.stopped, 0, 1) {
		close(m.stopCh)
	}
	return nil
}

// Stats returns hit/miss counters
func (m *Memory) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&m.hits),
		Misses: atomic.LoadInt64(&m.misses),
	}
}

// cleanupExpired periodically evicts expired entries
func (m *Memory) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			removed := 0
			m.entries.Range(func(k, v any) bool {
				if v.(*memoryEntry).isExpired() {
					m.entries.Delete(k)
					removed++
				}
				return true
			})
			if removed > 0 {
				m.logger.Debug("evicted expired cache entries", zap.Int("count", removed))
			}
		}
	}
}
