package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/client"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	mongoadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	httpserver "github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/http"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/http/handler"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	metricsNamespace   = "storefront"
	storageInitTimeout = 10 * time.Second
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *httpserver.Server
	metricsServer  *http.Server
	tracerProvider *sdktrace.TracerProvider
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, Catalog source: %s", cfg.Env, cfg.HTTPServer.Port, cfg.Catalog.Source)

	tp, err := tracer.InitTracer(ctx, cfg.Tracing, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		appLogger.Errorf("Failed to initialize MongoDB client: %v", err)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongoadapter.EnsureIndexes(ctx, db); err != nil {
		appLogger.Warnf("Failed to ensure MongoDB indexes: %v", err)
	}
	appLogger.Info("MongoDB client initialized successfully")

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	var publisher natsadapter.MessagePublisher = natsadapter.NoopPublisher{}
	natsConn, err := natsadapter.NewConnection(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Warnf("NATS unavailable, order and product events will not be published: %v", err)
	} else if publisher, err = natsadapter.NewNATSPublisher(natsConn); err != nil {
		appLogger.Warnf("Failed to create NATS publisher: %v", err)
		publisher = natsadapter.NoopPublisher{}
	}

	var mailer email.EmailSender = email.NoopSender{Log: appLogger}
	if cfg.SMTP.Enabled {
		if mailer, err = email.NewSMTPSender(cfg.SMTP, appLogger); err != nil {
			appLogger.Warnf("SMTP sender unavailable, confirmation emails are disabled: %v", err)
			mailer = email.NoopSender{Log: appLogger}
		}
	}

	var images s3.ImageStorage
	storageCtx, cancelStorage := context.WithTimeout(ctx, storageInitTimeout)
	storage, err := s3.NewS3Storage(storageCtx, cfg.MinIO, appLogger)
	cancelStorage()
	if err != nil {
		appLogger.Warnf("MinIO unavailable, product image upload is disabled: %v", err)
	} else {
		images = storage
	}

	metricsManager := metrics.NewMetricsManager(metricsNamespace)

	productRepo := mongoadapter.NewProductRepository(db)
	categoryRepo := mongoadapter.NewCategoryRepository(db)
	orderRepo := mongoadapter.NewOrderRepository(db)
	dealRepo := mongoadapter.NewDealRepository(db)
	announcementRepo := mongoadapter.NewAnnouncementRepository(db)
	cartRepo := redisadapter.NewCartRepository(redisClient)
	wishlistRepo := redisadapter.NewWishlistRepository(redisClient)
	productCache := redisadapter.NewProductDetailCacheRepository(redisClient)
	listingCache := redisadapter.NewCacheRepository(redisClient, appLogger)
	appLogger.Info("Repositories initialized")

	source, err := newCatalogSource(cfg.Catalog, productRepo, listingCache, appLogger)
	if err != nil {
		return nil, err
	}
	fetcher := catalog.NewFetcher(source, appLogger, metricsManager)

	segments := catalog.DefaultSegmentTable()
	if cfg.Catalog.SegmentsFile != "" {
		loader, err := catalog.LoadSegments(cfg.Catalog.SegmentsFile, segments, appLogger)
		if err != nil {
			appLogger.Warnf("Using built-in segments: %v", err)
		} else {
			loader.Watch()
		}
	}

	catalogService := service.NewCatalogService(service.CatalogServiceDeps{
		Fetcher:       fetcher,
		Segments:      segments,
		Bounds:        catalog.PriceBounds{Min: cfg.Catalog.MinPrice, Max: cfg.Catalog.MaxPrice},
		FetchLimit:    cfg.Catalog.PageLimit,
		Recorder:      metricsManager,
		Products:      productRepo,
		Categories:    categoryRepo,
		Deals:         dealRepo,
		Announcements: announcementRepo,
		Log:           appLogger,
	})
	cartService := service.NewCartService(cartRepo, productRepo, productCache, dealRepo, appLogger, service.CartServiceConfig{
		CartTTL:         cfg.Cart.TTL,
		ProductCacheTTL: cfg.ProductCache.TTL,
	})
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, productCache, cfg.ProductCache.TTL, appLogger)
	orderService := service.NewOrderService(service.OrderServiceDeps{
		Orders:       orderRepo,
		Carts:        cartRepo,
		Products:     productRepo,
		ProductCache: productCache,
		Deals:        dealRepo,
		Publisher:    publisher,
		Mailer:       mailer,
		Metrics:      metricsManager,
		Log:          appLogger,
	})
	receiptService := service.NewReceiptService(orderService, appLogger)
	adminService := service.NewAdminService(service.AdminServiceDeps{
		Orders:        orderRepo,
		Products:      productRepo,
		ProductCache:  productCache,
		Categories:    categoryRepo,
		Deals:         dealRepo,
		Announcements: announcementRepo,
		Images:        images,
		Publisher:     publisher,
		Log:           appLogger,
	})
	appLogger.Info("Services initialized")

	router := httpserver.NewRouter(httpserver.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, orderService, appLogger),
		Cart:    handler.NewCartHandler(cartService, wishlistService, appLogger),
		Orders:  handler.NewOrderHandler(orderService, receiptService, appLogger),
		Admin:   handler.NewAdminHandler(adminService, appLogger),
	}, cfg.Auth.JWTSecret, appLogger, metricsManager)

	return &App{
		cfg:            cfg,
		log:            appLogger,
		server:         httpserver.NewServer(appLogger, cfg.HTTPServer, router),
		metricsServer:  metrics.StartMetricsServer(cfg.Metrics.Port, appLogger, metricsManager.Registry),
		tracerProvider: tp,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsConn:       natsConn,
	}, nil
}

// newCatalogSource picks the configured product source and puts the Redis
// listing cache in front of it.
func newCatalogSource(cfg config.CatalogConfig, products repository.ProductRepository, cache repository.CacheRepository, log logger.Logger) (catalog.Source, error) {
	var source catalog.Source
	switch cfg.Source {
	case "api":
		apiClient, err := client.NewCatalogAPIClient(client.CatalogAPIConfig{
			BaseURL: cfg.UpstreamURL,
			Timeout: cfg.UpstreamTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create catalog API client: %w", err)
		}
		source = apiClient
	case "", "mongo":
		source = catalog.NewRepositorySource(products)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	if cfg.CacheTTL <= 0 {
		log.Infof("Catalog source %s initialized without listing cache", source.Name())
		return source, nil
	}
	log.Infof("Catalog source %s initialized with %s listing cache", source.Name(), cfg.CacheTTL)
	return catalog.NewCachedSource(source, cache, cfg.CacheTTL, log), nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	a.log.Info("HTTP server started in a goroutine")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Errorf("Error shutting down metrics server: %v", err)
		}
	}

	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		} else {
			a.log.Info("NATS connection drained")
		}
	}

	a.log.Info("Closing database connections...")

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}

	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}
