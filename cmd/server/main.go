package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/freshmart/backend/internal/application/catalog"
	contactapp "github.com/freshmart/backend/internal/application/contact"
	financeapp "github.com/freshmart/backend/internal/application/finance"
	identityapp "github.com/freshmart/backend/internal/application/identity"
	partnerapp "github.com/freshmart/backend/internal/application/partner"
	reportapp "github.com/freshmart/backend/internal/application/report"
	tradeapp "github.com/freshmart/backend/internal/application/trade"
	"github.com/freshmart/backend/internal/infrastructure/auth"
	"github.com/freshmart/backend/internal/infrastructure/cache"
	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/freshmart/backend/internal/infrastructure/event"
	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/freshmart/backend/internal/infrastructure/persistence"
	"github.com/freshmart/backend/internal/infrastructure/storage"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/freshmart/backend/internal/interfaces/http/handler"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/freshmart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/freshmart/backend/docs"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "1.0.0"

//	@title			FreshMart API
//	@version		1.0
//	@description	Farm-to-table grocery marketplace: catalog, orders, direct sales, payments and farmer self-service.

//	@contact.name	FreshMart Engineering
//	@contact.email	dev@freshmart.example.com

//	@license.name	MIT

//	@host		localhost:5000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FreshMart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry, Version), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	dbSystem := "postgresql"
	if cfg.Database.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Auto migration failed", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	farmerRepo := persistence.NewGormFarmerRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)

	var (
		blacklist   auth.TokenBlacklist
		idempotency middleware.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		idempotency = cache.NewRedisIdempotencyStore(redisClient, "")
		log.Info("Token blacklist and idempotency keys backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		memoryKeys := cache.NewInMemoryIdempotencyStore(5 * time.Minute)
		defer func() {
			_ = memoryKeys.Close()
		}()
		idempotency = memoryKeys
		log.Warn("Redis disabled, token blacklist and idempotency keys are process local")
	}

	var (
		objects    catalogapp.ObjectStorage
		uploadsDir string
	)
	switch cfg.Storage.Type {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare upload bucket", zap.Error(err))
		}
		objects = s3Storage
	default:
		localStorage, err := storage.NewLocalObjectStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL, log)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		objects = localStorage
		uploadsDir = localStorage.Root()
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
		eventBus.Subscribe(telemetry.NewBusinessMetricsHandler(metrics))
	}

	var kafkaPublisher *event.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = event.NewKafkaPublisher(event.NewKafkaWriter(cfg.Kafka), log)
		eventBus.Subscribe(kafkaPublisher)
		log.Info("Forwarding domain events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	userService := identityapp.NewUserService(userRepo, jwtService, blacklist, log)
	farmerService := identityapp.NewFarmerService(farmerRepo, jwtService, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	uploadService := catalogapp.NewUploadService(objects, cfg.Storage.MaxUploadSize, log)
	customerService := partnerapp.NewCustomerService(customerRepo)
	messageService := contactapp.NewMessageService(messageRepo, log)
	reportService := reportapp.NewReportService(productRepo, customerRepo, orderRepo, saleRepo)

	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, customerRepo, tradeScope, log)
	orderService.SetEventPublisher(eventBus)
	saleService := tradeapp.NewSaleService(saleRepo, productRepo, customerRepo, tradeScope, log)
	saleService.SetEventPublisher(eventBus)

	paymentService := financeapp.NewPaymentService(paymentRepo, orderRepo, persistence.NewGormFinanceTransactionScope(db.DB), log)
	paymentService.SetEventPublisher(eventBus)

	// HTTP handlers
	uploadHandler := handler.NewUploadHandler(uploadService)
	handlers := router.Handlers{
		User:      handler.NewUserHandler(userService),
		Farmer:    handler.NewFarmerHandler(farmerService, productService, categoryService, reportService, uploadHandler),
		Category:  handler.NewCategoryHandler(categoryService),
		Product:   handler.NewProductHandler(productService, uploadHandler),
		Upload:    uploadHandler,
		Customer:  handler.NewCustomerHandler(customerService),
		Order:     handler.NewOrderHandler(orderService),
		Sale:      handler.NewSaleHandler(saleService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Message:   handler.NewMessageHandler(messageService),
		Dashboard: handler.NewDashboardHandler(reportService),
		System:    handler.NewSystemHandler(db, Version, log),
	}

	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Users:          userRepo,
		Farmers:        farmerRepo,
		Logger:         log,
	})

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
	}

	engine := router.NewEngine(router.EngineConfig{
		Config:        cfg,
		Logger:        log,
		Metrics:       metrics,
		RateLimiter:   rateLimiter,
		Idempotency:   idempotency,
		Authenticator: authenticator,
		Handlers:      handlers,
		UploadsDir:    uploadsDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error("Error closing Kafka writer", zap.Error(err))
		}
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
