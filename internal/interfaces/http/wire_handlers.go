package http

import (
	"github.com/konqer/konqer-api/internal/interfaces/http/handlers"
	adminHandlers "github.com/konqer/konqer-api/internal/interfaces/http/handlers/admin"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler  *handlers.HealthHandler
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	serviceHandler *handlers.ServiceHandler
	webhookHandler *handlers.WebhookHandler

	// Admin
	adminDashboardHandler     *adminHandlers.AdminDashboardHandler
	adminUserHandler          *adminHandlers.AdminUserHandler
	adminEntitlementHandler   *adminHandlers.AdminEntitlementHandler
	adminServiceConfigHandler *adminHandlers.AdminServiceConfigHandler
}

// ============================================================
// Section 5: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(),
		authHandler:   handlers.NewAuthHandler(ucs.exchangeTokenUC, ucs.refreshTokenUC, ucs.logoutUC, log),
		userHandler: handlers.NewUserHandler(
			ucs.getProfileUC,
			ucs.listSubscriptionsUC,
			ucs.listServicesUC,
			ucs.getHistoryUC,
			ucs.createCheckoutUC,
			ucs.createPortalUC,
			log,
		),
		serviceHandler: handlers.NewServiceHandler(ucs.generateUC, ucs.getServiceConfigUC, log),
		webhookHandler: handlers.NewWebhookHandler(c.gateway, c.reconciler, log.Named("webhook")),

		adminDashboardHandler:     adminHandlers.NewAdminDashboardHandler(ucs.getMRRUC, ucs.getRevenueUC, ucs.getUsageUC, log),
		adminUserHandler:          adminHandlers.NewAdminUserHandler(ucs.listUsersUC, ucs.getUserDetailUC, log),
		adminEntitlementHandler:   adminHandlers.NewAdminEntitlementHandler(ucs.setServiceAccessUC, log),
		adminServiceConfigHandler: adminHandlers.NewAdminServiceConfigHandler(ucs.updateServiceConfigUC, log),
	}
}
