package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	httpAdapter "github.com/zora-digital-fashion/marketplace/internal/adapter/http"
	natsAdapter "github.com/zora-digital-fashion/marketplace/internal/adapter/messaging/nats"
	"github.com/zora-digital-fashion/marketplace/internal/adapter/repository/cache"
	"github.com/zora-digital-fashion/marketplace/internal/adapter/repository/memory"
	mongoRepo "github.com/zora-digital-fashion/marketplace/internal/adapter/repository/mongodb"
	s3Storage "github.com/zora-digital-fashion/marketplace/internal/adapter/storage/s3"
	"github.com/zora-digital-fashion/marketplace/internal/config"
	"github.com/zora-digital-fashion/marketplace/internal/mailer"
	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
	"github.com/zora-digital-fashion/marketplace/internal/platform/tracer"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/domain"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/seed"
	"github.com/zora-digital-fashion/marketplace/internal/wearable/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Logger
	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	// 2. Configuration
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("catalog_backend", cfg.CatalogBackend),
		zap.Bool("cache_enabled", cfg.RedisAddress != ""),
		zap.Bool("events_enabled", cfg.NATSURL != ""),
		zap.Bool("presign_enabled", cfg.MinioEndpoint != ""),
		zap.Bool("receipts_enabled", cfg.SMTPHost != ""),
	)

	// 3. Tracer
	if cfg.OTExporterOTLPEndpoint != "" {
		tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	// 4. Catalog and purchase ledger
	var (
		catalog   domain.CatalogRepository
		purchases domain.PurchaseRepository
	)
	switch cfg.CatalogBackend {
	case config.BackendMongo:
		mongoClient, err := connectMongo(cfg.MongoURI)
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		db := mongoClient.Database(cfg.MongoDatabase)

		wearableRepo := mongoRepo.NewWearableRepository(db, appLogger)
		items, err := seed.Validated()
		if err != nil {
			appLogger.Fatal("Invalid seed catalog", zap.Error(err))
		}
		seeded, err := wearableRepo.SeedIfEmpty(context.Background(), items)
		if err != nil {
			appLogger.Fatal("Failed to seed wearables collection", zap.Error(err))
		}
		appLogger.Info("MongoDB catalog ready", zap.Bool("seeded", seeded))

		catalog = wearableRepo
		purchases = mongoRepo.NewPurchaseRepository(db, appLogger)
	default:
		items, err := seed.Validated()
		if err != nil {
			appLogger.Fatal("Invalid seed catalog", zap.Error(err))
		}
		memCatalog, err := memory.NewCatalogRepository(items)
		if err != nil {
			appLogger.Fatal("Failed to build in-memory catalog", zap.Error(err))
		}
		catalog = memCatalog
		purchases = memory.NewPurchaseRepository()
		appLogger.Info("In-memory catalog ready", zap.Int("wearables", len(items)))
	}

	// 5. Snapshot cache
	if cfg.RedisAddress != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, serving catalog without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cached := cache.NewCachedCatalog(catalog, cache.NewRedisStore(redisClient, appLogger), cfg.CatalogCacheTTL, appLogger, metricsManager)
			if err := cached.Invalidate(context.Background()); err != nil {
				appLogger.Warn("Failed to clear stale catalog cache", zap.Error(err))
			}
			catalog = cached
		}
	}

	// 6. Event publisher
	var publisher domain.EventPublisher = natsAdapter.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// 7. Model storage
	var storage domain.AssetStorage
	if cfg.MinioEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3, err := s3Storage.NewS3Storage(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
			cfg.MinioBucket, cfg.MinioUseSSL, cfg.ModelURLTTL, appLogger)
		cancel()
		if err != nil {
			appLogger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		storage = s3
	}

	// 8. Receipt mailer
	var receipts domain.ReceiptMailer = mailer.NopMailer{}
	if cfg.SMTPHost != "" {
		receipts = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	// 9. Usecases and HTTP
	wearableUC := usecase.NewWearableUsecase(catalog, appLogger, metricsManager)
	assetUC := usecase.NewAssetUsecase(catalog, storage, appLogger)
	purchaseUC := usecase.NewPurchaseUsecase(catalog, purchases, publisher, receipts, appLogger, metricsManager)

	handler := httpAdapter.NewHandler(wearableUC, assetUC, purchaseUC, appLogger, metricsManager)
	router := httpAdapter.NewRouter(handler, httpAdapter.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.HTTPRequestTimeout,
	}, appLogger, metricsManager)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. Metrics server
	metricsServer := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager)
	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(); err != nil {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			appLogger.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	appLogger.Info("Application shutting down...")
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}
