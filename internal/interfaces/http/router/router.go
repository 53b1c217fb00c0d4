package router

import (
	"net/http"

	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/telemetry"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/dto"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/handler"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Logger *zap.Logger
	// Meters may be nil; HTTP metrics are then skipped.
	Meters *telemetry.MeterProvider
	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider
	// Limiter may be nil; rate limiting is then skipped.
	Limiter *middleware.RateLimiter
	Health  *handler.HealthHandler
	API     []handler.Registrar
}

// NewEngine builds the gin engine with the full middleware chain, the
// root health endpoint and every API registrar under /api/v1.
func NewEngine(cfg *config.Config, deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id must exist before logging and tracing
	// read it, and the span must exist before the logger is derived.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recover(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		Enabled:        cfg.Telemetry.Enabled,
		TracerProvider: deps.TracerProvider,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.AccessLog(log))
	engine.Use(middleware.HTTPMetrics(deps.Meters, log))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled && deps.Limiter != nil {
		engine.Use(middleware.RateLimit(deps.Limiter))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(handler.RequestIDKey)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Method not allowed", c.GetString(handler.RequestIDKey)))
	})

	if deps.Health != nil {
		engine.GET("/health", deps.Health.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, registrar := range deps.API {
		r.Register(registrar)
	}
	r.Setup()

	log.Info("HTTP routes registered", zap.Int("registrars", len(deps.API)))
	return engine
}
