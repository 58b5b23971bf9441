package router

import (
	"net/http"

	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/badgekit/backend/internal/interfaces/http/handler"
	"github.com/badgekit/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP entry points mounted by NewEngine.
type Handlers struct {
	Health      *handler.HealthHandler
	PublicBadge *handler.PublicBadgeHandler
	Uninstall   *handler.UninstallWebhookHandler
	BadgeAdmin  *handler.BadgeAdminHandler
	Catalog     *handler.CatalogHandler
}

// Security verifies the two authenticated surfaces.
type Security struct {
	SessionTokens middleware.SessionTokenVerifier
	Webhooks      middleware.WebhookVerifier
}

// EngineConfig holds the transport settings of the engine.
type EngineConfig struct {
	TrustedProxies     []string
	AdminCORS          middleware.CORSConfig
	MaxBodySize        int64
	WebhookMaxBodySize int64
	Tracing            middleware.TracingConfig
	Swagger            middleware.SwaggerConfig
}

// NewEngine builds the gin engine with the full middleware stack:
//
//	Recovery -> RequestID -> request logging -> tracing
//
// followed by the route groups, each with its own CORS and auth:
//
//	/health                      none
//	/api/badge                   CORS *
//	/webhooks/app/uninstalled    body limit, HMAC
//	/api/v1/admin/...            CORS, body limit, session token
//	/swagger/*any                SwaggerProtection
func NewEngine(cfg EngineConfig, h Handlers, sec Security, log *zap.Logger) *gin.Engine {
	engine := gin.New()

	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing)...)

	engine.GET("/health", h.Health.Check)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	storefront := NewDomainGroup("storefront", "/api").
		Use(middleware.CORSWithConfig(middleware.PublicCORSConfig()))
	storefront.GET("/badge", h.PublicBadge.Lookup)
	storefront.OPTIONS("/badge", h.PublicBadge.Preflight)
	storefront.RegisterRoutes(&engine.RouterGroup)

	webhooks := NewDomainGroup("webhooks", "/webhooks").
		Use(middleware.BodyLimit(cfg.WebhookMaxBodySize), middleware.WebhookHMAC(sec.Webhooks, log))
	webhooks.POST("/app/uninstalled", h.Uninstall.Handle)
	webhooks.RegisterRoutes(&engine.RouterGroup)

	r := NewRouter(engine, WithAPIVersion("v1"))

	admin := NewDomainGroup("admin", "/admin").
		Use(
			middleware.CORSWithConfig(cfg.AdminCORS),
			middleware.BodyLimit(cfg.MaxBodySize),
			middleware.SessionAuth(sec.SessionTokens, log),
		)
	admin.GET("/badges", h.BadgeAdmin.List)
	admin.POST("/badges", h.BadgeAdmin.Mutate)
	admin.OPTIONS("/badges", preflight)
	admin.GET("/products", h.Catalog.List)
	admin.OPTIONS("/products", preflight)

	r.Register(admin)
	r.Setup()

	return engine
}

// preflight is only reached when CORS did not answer the request itself.
func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
