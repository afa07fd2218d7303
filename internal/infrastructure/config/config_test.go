package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "softpan-console", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:7097/api", cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.NotEmpty(t, cfg.Session.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		API:   APIConfig{BaseURL: "https://api.example.com/api", Timeout: 5 * time.Second},
		Cache: CacheConfig{Backend: "redis", DefaultTTL: time.Minute},
	}
	applyDefaults(cfg)

	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.DefaultTTL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("rejects non-http base URL", func(t *testing.T) {
		cfg := base()
		cfg.API.BaseURL = "ftp://example.com"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Backend = "memcached"
		assert.Error(t, cfg.validate())
	})
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("SOFTPAN_API_BASE_URL", "https://softpan.example.com/api")
	t.Setenv("SOFTPAN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://softpan.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}
