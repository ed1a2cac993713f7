// Package admin provides HTTP handlers for administrative operations.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

const maxReportDays = 365

type getMRRUseCase interface {
	Execute(ctx context.Context) (*dto.MRRResponse, error)
}

type getRevenueUseCase interface {
	Execute(ctx context.Context, days int) (*dto.RevenueResponse, error)
}

type getUsageUseCase interface {
	Execute(ctx context.Context, days int) (*dto.UsageResponse, error)
}

// AdminDashboardHandler serves the revenue and usage reports.
type AdminDashboardHandler struct {
	mrrUC     getMRRUseCase
	revenueUC getRevenueUseCase
	usageUC   getUsageUseCase
	logger    logger.Interface
}

// NewAdminDashboardHandler creates a new AdminDashboardHandler.
func NewAdminDashboardHandler(
	mrrUC getMRRUseCase,
	revenueUC getRevenueUseCase,
	usageUC getUsageUseCase,
	log logger.Interface,
) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		mrrUC:     mrrUC,
		revenueUC: revenueUC,
		usageUC:   usageUC,
		logger:    log,
	}
}

// GetMRR handles GET /admin/metrics/mrr
func (h *AdminDashboardHandler) GetMRR(c *gin.Context) {
	resp, err := h.mrrUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// GetRevenue handles GET /admin/metrics/revenue?days=30
func (h *AdminDashboardHandler) GetRevenue(c *gin.Context) {
	days := utils.ParseQueryDays(c, 30, maxReportDays)
	resp, err := h.revenueUC.Execute(c.Request.Context(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// GetUsage handles GET /admin/analytics/usage?days=7
func (h *AdminDashboardHandler) GetUsage(c *gin.Context) {
	days := utils.ParseQueryDays(c, 7, maxReportDays)
	resp, err := h.usageUC.Execute(c.Request.Context(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
