package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	badgeapp "github.com/badgekit/backend/internal/application/badge"
	catalogapp "github.com/badgekit/backend/internal/application/catalog"
	"github.com/badgekit/backend/internal/application/teardown"
	"github.com/badgekit/backend/internal/infrastructure/auth"
	"github.com/badgekit/backend/internal/infrastructure/cache"
	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/badgekit/backend/internal/infrastructure/persistence"
	"github.com/badgekit/backend/internal/infrastructure/scheduler"
	"github.com/badgekit/backend/internal/infrastructure/shopify"
	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	"github.com/badgekit/backend/internal/interfaces/http/handler"
	"github.com/badgekit/backend/internal/interfaces/http/middleware"
	"github.com/badgekit/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/badgekit/backend/docs"
)

//	@title			Product Badge API
//	@version		1.0
//	@description	Merchants attach named, colored badges to catalog products; storefronts look them up.

//	@BasePath	/

//	@securityDefinitions.apikey	SessionToken
//	@in							header
//	@name						Authorization
//	@description				Platform session token issued to the embedded admin. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting badge service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabase(ctx, &cfg.Database,
		persistence.WithGormLogger(gormLog),
		persistence.WithLogger(log),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tp.IsEnabled() && cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL && !cfg.App.IsProduction(),
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	badgeRepo := persistence.NewGormBadgeRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)

	// Application services
	adminService := badgeapp.NewAdminService(badgeRepo, log)
	lookupService := badgeapp.NewLookupService(badgeRepo, log)
	teardownService := teardown.NewService(sessionRepo, badgeRepo, log)
	sweepService := teardown.NewSweepService(badgeRepo, sessionRepo, log)
	catalogAdapter := shopify.NewCatalogAdapter(cfg.Shopify, sessionRepo, shopify.WithCatalogLogger(log))
	pickerService := catalogapp.NewPickerService(catalogAdapter, cfg.Shopify.CatalogPageSize, log)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	sweeper := scheduler.NewOrphanSweepScheduler(cfg.Sweeper, sweepService, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal("Failed to start orphan sweeper", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := sweeper.Stop(stopCtx); err != nil {
			log.Error("Error stopping orphan sweeper", zap.Error(err))
		}
	}()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	adminCORS := middleware.DefaultCORSConfig()
	adminCORS.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(adminCORS.AllowOrigins) == 0 && cfg.Shopify.AppURL != "" {
		adminCORS.AllowOrigins = []string{cfg.Shopify.AppURL}
	}

	engine := router.NewEngine(
		router.EngineConfig{
			TrustedProxies:     cfg.HTTP.TrustedProxies,
			AdminCORS:          adminCORS,
			MaxBodySize:        cfg.HTTP.MaxBodySize,
			WebhookMaxBodySize: cfg.Webhook.MaxBodySize,
			Tracing: middleware.TracingConfig{
				ServiceName: cfg.Telemetry.ServiceName,
				Enabled:     tp.IsEnabled(),
			},
			Swagger: middleware.SwaggerConfig{
				Enabled: cfg.Swagger.Enabled && !cfg.App.IsProduction(),
			},
		},
		router.Handlers{
			Health:      handler.NewHealthHandler(db, version),
			PublicBadge: handler.NewPublicBadgeHandler(lookupService),
			Uninstall:   handler.NewUninstallWebhookHandler(teardownService, sessionRepo, idempotencyStore, cfg.Webhook.IdempotencyTTL),
			BadgeAdmin:  handler.NewBadgeAdminHandler(adminService),
			Catalog:     handler.NewCatalogHandler(pickerService),
		},
		router.Security{
			SessionTokens: auth.NewSessionTokenVerifier(cfg.Shopify),
			Webhooks:      shopify.NewWebhookVerifier(cfg.Shopify),
		},
		log,
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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

	log.Info("Server exited gracefully")
}
