package router

import (
	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig carries what the HTTP engine needs besides the API handlers
type EngineConfig struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *telemetry.Metrics // nil disables /metrics and HTTP metrics
	RateLimiter   *middleware.RateLimiter
	Idempotency   middleware.IdempotencyStore // nil disables Idempotency-Key handling
	Authenticator *middleware.Authenticator
	Handlers      Handlers
	UploadsDir    string // served at /uploads when set
}

// NewEngine builds the gin engine with the global middleware chain, the
// platform endpoints and every API route.
//
// Middleware order: RequestID, Recovery, Tracing, Logging, Metrics,
// Secure headers, CORS, BodyLimit, RateLimit.
func NewEngine(ec EngineConfig) *gin.Engine {
	cfg := ec.Config
	log := ec.Logger

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(ec.Metrics))
	engine.Use(middleware.SecureWithConfig(securityConfig(cfg)))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if ec.RateLimiter != nil {
		engine.Use(middleware.RateLimit(ec.RateLimiter))
	}

	engine.GET("/health", ec.Handlers.System.Health)
	if ec.Metrics != nil && cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(ec.Metrics.Handler()))
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler))
	if ec.UploadsDir != "" {
		engine.Static("/uploads", ec.UploadsDir)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	idempotent := middleware.Idempotent(ec.Idempotency, cfg.HTTP.IdempotencyTTL, log)
	for _, group := range APIGroups(ec.Handlers, ec.Authenticator, idempotent) {
		r.Register(group)
	}
	r.Setup()

	return engine
}

func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sc := middleware.DefaultSecurityConfig()
	sc.HSTSEnabled = cfg.App.IsProduction()
	return sc
}
