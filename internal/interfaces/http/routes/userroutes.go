package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/interfaces/http/handlers"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for the caller-scoped routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	user := engine.Group("/user")
	user.Use(cfg.AuthMiddleware.RequireAuth())
	{
		user.GET("/me", cfg.UserHandler.GetMe)
		user.GET("/subscriptions", cfg.UserHandler.ListSubscriptions)
		user.GET("/services", cfg.UserHandler.ListServices)
		user.GET("/history", cfg.UserHandler.GetHistory)
		user.POST("/checkout", cfg.RateLimiter.Limit(), cfg.UserHandler.CreateCheckout)
		user.POST("/portal", cfg.RateLimiter.Limit(), cfg.UserHandler.CreatePortal)
	}
}
