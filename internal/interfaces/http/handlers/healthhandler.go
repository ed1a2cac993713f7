package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/shared/version"
)

const serviceName = "konqer-api"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": version.String(),
	})
}

// Root describes the service.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": version.String(),
		"health":  "/health",
	})
}
