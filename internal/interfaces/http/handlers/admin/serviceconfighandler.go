package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type updateServiceConfigUseCase interface {
	Execute(ctx context.Context, actorID, service string, req dto.UpdateServiceConfigRequest) (*dto.ServiceConfigResponse, error)
}

type AdminServiceConfigHandler struct {
	updateUC updateServiceConfigUseCase
	logger   logger.Interface
}

func NewAdminServiceConfigHandler(updateUC updateServiceConfigUseCase, log logger.Interface) *AdminServiceConfigHandler {
	return &AdminServiceConfigHandler{
		updateUC: updateUC,
		logger:   log,
	}
}

// UpdateConfig handles PUT /admin/services/:service/config
func (h *AdminServiceConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateServiceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for service config update", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	actorID := c.GetString(constants.ContextKeyAdminID)
	resp, err := h.updateUC.Execute(c.Request.Context(), actorID, c.Param("service"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Service configuration updated", resp)
}
