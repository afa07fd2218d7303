package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/softpan/console/internal/infrastructure/config"
)

// Factory creates cache stores based on configuration
type Factory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithFactoryLogger sets the logger for the factory
func WithFactoryLogger(log *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = log
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds the store selected by configuration
func (f *Factory) Create() (Store, error) {
	switch f.cacheConfig.Backend {
	case "redis":
		store, err := NewRedis(RedisConfig{
			Addr:       f.redisConfig.Addr(),
			Password:   f.redisConfig.Password,
			DB:         f.redisConfig.DB,
			DefaultTTL: f.cacheConfig.DefaultTTL,
		})
		if err != nil {
			if !f.allowInMemoryFallback {
				return nil, fmt.Errorf("failed to create Redis cache: %w", err)
			}
			f.logger.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
			return f.createMemory(), nil
		}
		return store, nil
	case "memory", "":
		return f.createMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", f.cacheConfig.Backend)
	}
}

func (f *Factory) createMemory() *Memory {
	return NewMemory(
		WithMemoryTTL(f.cacheConfig.DefaultTTL),
		WithMemoryLogger(f.logger),
	)
}
