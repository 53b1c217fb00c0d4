package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcompany "github.com/Graviton17/TrustChain-sub001/internal/application/company"
	appinsurance "github.com/Graviton17/TrustChain-sub001/internal/application/insurance"
	appproject "github.com/Graviton17/TrustChain-sub001/internal/application/project"
	"github.com/Graviton17/TrustChain-sub001/internal/application/setup"
	appsubsidy "github.com/Graviton17/TrustChain-sub001/internal/application/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/cache"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/persistence"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/telemetry"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/handler"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/middleware"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	providers, err := telemetry.Start(ctx, telemetry.Settings{
		Exporter: telemetry.Exporter{
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			Insecure:          cfg.Telemetry.Insecure,
			ServiceName:       cfg.Telemetry.ServiceName,
			ServiceVersion:    cfg.App.Version,
		},
		Tracing:         cfg.Telemetry.Enabled,
		SamplingRatio:   cfg.Telemetry.SamplingRatio,
		Metrics:         cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		MetricsInterval: cfg.Telemetry.MetricsInterval,
		Logs:            cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// The process logger is rebuilt with an OTLP core once the log
	// provider exists.
	if provider := providers.Logs.Provider(); provider != nil {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, provider, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, otelCore); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TrustChain API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if cfg.Database.Driver == config.DriverSQLite {
			dbSystem = "sqlite"
		}
		err := db.DB.Use(telemetry.NewQueryTracer(dbSystem,
			telemetry.WithSlowQuery(cfg.Telemetry.DBSlowQueryThresh),
			telemetry.WithQueryVariables(cfg.Telemetry.DBLogFullSQL),
			telemetry.WithTracerLogger(log),
		))
		if err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(ctx, db.DB, providers.Meter, telemetry.DBMetricsConfig{
		Enabled:            cfg.Telemetry.MetricsEnabled,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	// Interfaces stay nil when metrics are off so services fall back to no-ops.
	var (
		errorRecorder   handler.ErrorRecorder
		subsidyMetrics  appsubsidy.Metrics
		businessMetrics *telemetry.BusinessMetrics
	)
	if providers.Meter.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:         providers.Meter.Meter("trustchain.business"),
			Logger:        log,
			RecordCounter: telemetry.NewGormRecordCounter(db.DB, persistence.TableNames()...),
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
		defer businessMetrics.Stop()
		errorRecorder, subsidyMetrics = businessMetrics, businessMetrics
	}

	repos := persistence.NewRepositories(db.DB)
	services := handler.Services{
		Company:   appcompany.NewService(repos.Profiles, repos.Contacts, repos.Financials, repos.Operations),
		Project:   appproject.NewService(repos.Projects, repos.Compliance, repos.ProjectFinance, repos.Production, repos.Verification),
		Insurance: appinsurance.NewService(repos.Policies),
		Subsidy:   appsubsidy.NewService(repos.Subsidies, subsidyMetrics),
	}

	guard, err := cache.OpenGuard(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	)
	if err != nil {
		log.Fatal("Failed to create setup guard", zap.Error(err))
	}
	defer func() {
		if err := guard.Close(); err != nil {
			log.Error("Error closing setup guard", zap.Error(err))
		}
	}()

	initializer := setup.NewInitializer(guard,
		func(ctx context.Context) error { return persistence.AutoMigrate(ctx, db.DB) },
		repos.Subsidies,
		setup.Options{
			AutoMigrate:  cfg.Setup.AutoMigrate,
			Seed:         cfg.Setup.Seed,
			LockTTL:      cfg.Setup.LockTTL,
			PollInterval: cfg.Setup.PollInterval,
		},
		log,
	)
	if _, err := initializer.Run(ctx); err != nil {
		log.Fatal("Setup failed", zap.Error(err))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	engine := router.NewEngine(cfg, router.Dependencies{
		Logger:  log,
		Meters:  providers.Meter,
		Limiter: limiter,
		Health:  handler.NewHealthHandler(db, initializer.Done, cfg.App.Version),
		API: handler.APIHandlers(services, handler.Options{
			ExposeErrorDetail: !cfg.App.IsProduction(),
			Errors:            errorRecorder,
		}),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()

	log.Info("Server exited gracefully")
}
