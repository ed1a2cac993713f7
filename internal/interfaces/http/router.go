package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/konqer/konqer-api/docs"
	"github.com/konqer/konqer-api/internal/infrastructure/config"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
	"github.com/konqer/konqer-api/internal/interfaces/http/routes"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := utils.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	c, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.CORSOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/", r.hdlrs.healthHandler.Root)
	r.engine.GET("/health", r.hdlrs.healthHandler.Health)

	if r.cfg.Server.DocsEnabled {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.hdlrs.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:    r.hdlrs.userHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupServiceRoutes(r.engine, &routes.ServiceRouteConfig{
		ServiceHandler: r.hdlrs.serviceHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupWebhookRoutes(r.engine, &routes.WebhookRouteConfig{
		WebhookHandler: r.hdlrs.webhookHandler,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		DashboardHandler:     r.hdlrs.adminDashboardHandler,
		UserHandler:          r.hdlrs.adminUserHandler,
		EntitlementHandler:   r.hdlrs.adminEntitlementHandler,
		ServiceConfigHandler: r.hdlrs.adminServiceConfigHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
