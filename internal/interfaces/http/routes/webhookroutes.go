package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/interfaces/http/handlers"
)

type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupWebhookRoutes registers provider callbacks. No auth middleware: the
// handler checks the provider signature.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.HandleStripe)
	}
}
