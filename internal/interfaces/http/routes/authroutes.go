package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/interfaces/http/handlers"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures the token proxy routes. They carry no bearer
// token, so the limiter keys on client IP.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	auth.Use(cfg.RateLimiter.Limit())
	{
		auth.POST("/exchange-token", cfg.AuthHandler.ExchangeToken)
		auth.POST("/refresh-token", cfg.AuthHandler.RefreshToken)
		auth.POST("/logout", cfg.AuthHandler.Logout)
	}
}
