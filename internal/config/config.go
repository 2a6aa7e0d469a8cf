package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"

	defaultJWTSecret = "change-me-wearable-service-secret"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the service.
type Config struct {
	ServiceName        string        `mapstructure:"SERVICE_NAME"`
	HTTPPort           string        `mapstructure:"HTTP_PORT"`
	HTTPRequestTimeout time.Duration `mapstructure:"HTTP_REQUEST_TIMEOUT"`

	CatalogBackend  string        `mapstructure:"CATALOG_BACKEND"`
	MongoURI        string        `mapstructure:"MONGO_URI"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE"`
	RedisAddress    string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	MinioEndpoint  string        `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string        `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string        `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool          `mapstructure:"MINIO_USE_SSL"`
	ModelURLTTL    time.Duration `mapstructure:"MODEL_URL_TTL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "wearable-service")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_REQUEST_TIMEOUT", "5s")

	v.SetDefault("CATALOG_BACKEND", BackendMemory)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "digital_fashion")
	v.SetDefault("REDIS_ADDRESS", "") // empty disables the snapshot cache
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", "1m")

	v.SetDefault("NATS_URL", "") // empty disables purchase events

	v.SetDefault("MINIO_ENDPOINT", "") // empty serves static model paths
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "wearable-models")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MODEL_URL_TTL", "15m")

	v.SetDefault("JWT_SECRET", defaultJWTSecret)

	v.SetDefault("SMTP_HOST", "") // empty disables receipts
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_EMAIL", "")
	v.SetDefault("SMTP_PASSWORD", "")

	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// LoadConfig reads configuration from the environment. A .env file, if any,
// is loaded into the environment by main before this runs.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Configuration is invalid", zap.Error(err))
		return nil, err
	}

	if cfg.JWTSecret == defaultJWTSecret {
		appLogger.Warn("JWT_SECRET is set to its default insecure value. Please set a strong secret in your environment.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Duration("http_request_timeout", cfg.HTTPRequestTimeout),
		zap.String("catalog_backend", cfg.CatalogBackend),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("redis_enabled", cfg.RedisAddress != ""),
		zap.Duration("catalog_cache_ttl", cfg.CatalogCacheTTL),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("minio_enabled", cfg.MinioEndpoint != ""),
		zap.Bool("smtp_enabled", cfg.SMTPHost != ""),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.CatalogBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("%w: MONGO_URI and MONGO_DATABASE are required for the mongo backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown CATALOG_BACKEND '%s'", ErrInvalidConfig, c.CatalogBackend)
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("%w: HTTP_PORT is required", ErrInvalidConfig)
	}
	if c.HTTPRequestTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_REQUEST_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.RedisAddress != "" && c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("%w: CATALOG_CACHE_TTL must be positive", ErrInvalidConfig)
	}
	if c.MinioEndpoint != "" {
		if c.MinioBucket == "" {
			return fmt.Errorf("%w: MINIO_BUCKET is required when MINIO_ENDPOINT is set", ErrInvalidConfig)
		}
		if c.ModelURLTTL <= 0 {
			return fmt.Errorf("%w: MODEL_URL_TTL must be positive", ErrInvalidConfig)
		}
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET is required", ErrInvalidConfig)
	}
	if c.SMTPHost != "" && c.SMTPPort <= 0 {
		return fmt.Errorf("%w: SMTP_PORT must be positive", ErrInvalidConfig)
	}
	return nil
}
