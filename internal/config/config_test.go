package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "wearable-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.HTTPRequestTimeout)
	assert.Equal(t, BackendMemory, cfg.CatalogBackend)
	assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.ModelURLTTL)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "2s")
	t.Setenv("CATALOG_BACKEND", "mongo")
	t.Setenv("MONGO_DATABASE", "wearables_test")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := LoadConfig(logger.NewNopLogger())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 2*time.Second, cfg.HTTPRequestTimeout)
	assert.Equal(t, BackendMongo, cfg.CatalogBackend)
	assert.Equal(t, "wearables_test", cfg.MongoDatabase)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "postgres")

	_, err := LoadConfig(logger.NewNopLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			HTTPPort:           "8080",
			HTTPRequestTimeout: time.Second,
			CatalogBackend:     BackendMemory,
			CatalogCacheTTL:    time.Minute,
			ModelURLTTL:        time.Minute,
			MinioBucket:        "models",
			JWTSecret:          "secret",
			SMTPPort:           587,
		}
	}
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero timeout", func(c *Config) { c.HTTPRequestTimeout = 0 }},
		{"missing port", func(c *Config) { c.HTTPPort = "" }},
		{"mongo without uri", func(c *Config) { c.CatalogBackend = BackendMongo }},
		{"cache without ttl", func(c *Config) { c.RedisAddress = "redis:6379"; c.CatalogCacheTTL = 0 }},
		{"minio without bucket", func(c *Config) { c.MinioEndpoint = "minio:9000"; c.MinioBucket = "" }},
		{"minio without ttl", func(c *Config) { c.MinioEndpoint = "minio:9000"; c.ModelURLTTL = -time.Second }},
		{"empty jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"smtp without port", func(c *Config) { c.SMTPHost = "smtp.example.com"; c.SMTPPort = 0 }},
	}

	ok := base()
	require.NoError(t, ok.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
