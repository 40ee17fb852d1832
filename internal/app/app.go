package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/email"
	mongoadapter "github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/mongo"
	natsadapter "github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/nats"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/payment"
	redisadapter "github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/redis"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/tracer"
	httpserver "github.com/shalean-cleaning/shalean-cleaning-services/internal/port/http"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *httpserver.Server
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
	tracerProvider *sdktrace.TracerProvider
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		TimeFormat:  cfg.Logger.TimeFormat,
		ServiceName: cfg.Tracing.ServiceName,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	tp, err := tracer.InitTracer(ctx, cfg.Tracing, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	metricsManager := metrics.NewMetricsManager("shalean")

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		appLogger.Errorf("Failed to initialize MongoDB client: %v", err)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	appLogger.Info("MongoDB client initialized successfully")

	if err := mongoadapter.EnsureBookingIndexes(ctx, mongoClient, cfg.MongoDB); err != nil {
		appLogger.Warnf("Failed to ensure booking indexes: %v", err)
	}
	if cfg.MongoDB.SeedCatalog {
		written, err := mongoadapter.SeedCatalog(ctx, mongoClient, cfg.MongoDB, mongoadapter.CatalogSeed{
			Services: catalog.SeedServices(),
			Extras:   catalog.SeedExtras(),
			Regions:  catalog.SeedRegions(),
			Suburbs:  catalog.SeedSuburbs(),
			Cleaners: catalog.SeedCleaners(),
		})
		if err != nil {
			appLogger.Warnf("Failed to seed catalog: %v", err)
		} else {
			appLogger.Infof("Catalog seeded with %d documents", written)
		}
	}

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	var publisher natsadapter.MessagePublisher = natsadapter.NopPublisher{}
	natsConn, err := natsadapter.NewConnection(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Warnf("NATS unavailable, booking events will not be published: %v", err)
	} else {
		publisher, err = natsadapter.NewNATSPublisher(natsConn)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		appLogger.Info("NATS publisher initialized")
	}

	var sender email.EmailSender
	if cfg.SMTP.Enabled() {
		sender, err = email.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP sender: %w", err)
		}
		appLogger.Info("SMTP sender initialized")
	} else {
		appLogger.Info("SMTP not configured, confirmation e-mails are disabled")
	}

	var gateway payment.Gateway
	if cfg.Stripe.Enabled() {
		gateway, err = payment.NewStripeGateway(cfg.Stripe, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment gateway: %w", err)
		}
		appLogger.Info("Stripe gateway initialized")
	} else {
		appLogger.Warn("Stripe not configured, payment endpoints will answer 503")
	}

	bookingRepo := mongoadapter.NewBookingRepository(mongoClient, cfg.MongoDB)
	catalogRepo := mongoadapter.NewCatalogRepository(mongoClient, cfg.MongoDB)
	stateRepo := redisadapter.NewBookingStateRepository(redisClient)
	catalogCache := redisadapter.NewCatalogCacheRepository(redisClient)
	appLogger.Info("Repositories initialized")

	catalogService := service.NewCatalogService(catalogRepo, catalogCache, metricsManager, appLogger,
		service.CatalogServiceConfig{CacheTTL: cfg.CatalogCache.TTL})
	sessionService := service.NewBookingSessionService(stateRepo, catalogService, metricsManager, appLogger,
		service.BookingSessionServiceConfig{StateTTL: cfg.BookingState.TTL})
	bookingService := service.NewBookingService(bookingRepo, sessionService, publisher, cfg.NATS.Events, metricsManager, appLogger)
	receiptService := service.NewReceiptService(sender, appLogger)
	paymentService := service.NewPaymentService(bookingRepo, gateway, receiptService, publisher, cfg.NATS.Events,
		cfg.Stripe, metricsManager, appLogger)

	handler := httpserver.NewHandler(catalogService, sessionService, bookingService, paymentService, appLogger)
	router := httpserver.NewRouter(handler, metricsManager, httpserver.RouterConfig{
		JWTSecret:   cfg.Auth.JWTSecret,
		Metrics:     cfg.Metrics,
		ServiceName: cfg.Tracing.ServiceName,
	})
	srv := httpserver.NewServer(appLogger, cfg.HTTPServer, router)
	appLogger.Info("HTTP server instance created")

	return &App{
		cfg:            cfg,
		log:            appLogger,
		server:         srv,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsConn:       natsConn,
		tracerProvider: tp,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then releases
// every dependency. The returned error is the listener failure, if any.
func (a *App) Run() error {
	a.log.Info("Starting application components...")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start()
	}()
	a.log.Info("HTTP server started in a goroutine")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)
	case err := <-serverErr:
		if err != nil {
			a.log.Errorf("HTTP server failed: %v", err)
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.server.GracefulTimeout()+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
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

	a.log.Info("Application shut down")
	_ = a.log.Sync()
	return runErr
}
