package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/domain/admin"
	adminhandlers "github.com/konqer/konqer-api/internal/interfaces/http/handlers/admin"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for the admin API.
type AdminRouteConfig struct {
	DashboardHandler     *adminhandlers.AdminDashboardHandler
	UserHandler          *adminhandlers.AdminUserHandler
	EntitlementHandler   *adminhandlers.AdminEntitlementHandler
	ServiceConfigHandler *adminhandlers.AdminServiceConfigHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin routes. Every route needs an admin row
// for the caller plus the casbin policy for its (resource, action).
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	perm := cfg.PermissionMiddleware.RequirePermission

	adminGroup := engine.Group("/admin")
	adminGroup.Use(cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.RequireAdmin())
	{
		adminGroup.GET("/metrics/mrr", perm(admin.ResourceMetrics, admin.ActionRead), cfg.DashboardHandler.GetMRR)
		adminGroup.GET("/metrics/revenue", perm(admin.ResourceMetrics, admin.ActionRead), cfg.DashboardHandler.GetRevenue)
		adminGroup.GET("/analytics/usage", perm(admin.ResourceAnalytics, admin.ActionRead), cfg.DashboardHandler.GetUsage)

		adminGroup.GET("/users", perm(admin.ResourceUsers, admin.ActionRead), cfg.UserHandler.ListUsers)
		adminGroup.GET("/users/:id", perm(admin.ResourceUsers, admin.ActionRead), cfg.UserHandler.GetUser)
		adminGroup.POST("/users/:id/unlock/:service", perm(admin.ResourceEntitlements, admin.ActionWrite), cfg.EntitlementHandler.Unlock)
		adminGroup.POST("/users/:id/lock/:service", perm(admin.ResourceEntitlements, admin.ActionWrite), cfg.EntitlementHandler.Lock)

		adminGroup.PUT("/services/:service/config", perm(admin.ResourceServices, admin.ActionWrite), cfg.ServiceConfigHandler.UpdateConfig)
	}
}
