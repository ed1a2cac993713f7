package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/interfaces/http/handlers"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
)

// ServiceRouteConfig holds dependencies for service routes.
type ServiceRouteConfig struct {
	ServiceHandler *handlers.ServiceHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

func SetupServiceRoutes(engine *gin.Engine, cfg *ServiceRouteConfig) {
	services := engine.Group("/services")
	{
		services.GET("/config/:service", cfg.ServiceHandler.GetConfig)
		services.POST("/:service/generate",
			cfg.AuthMiddleware.RequireAuth(),
			cfg.RateLimiter.Limit(),
			cfg.ServiceHandler.Generate,
		)
	}
}
