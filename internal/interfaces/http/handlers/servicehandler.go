package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	admindto "github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/application/generation/dto"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type generateUseCase interface {
	Execute(ctx context.Context, userID, service string, req dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type getServiceConfigUseCase interface {
	Execute(ctx context.Context, service string) (*admindto.ServiceConfigResponse, error)
}

// ServiceHandler serves the generation endpoint and the public service
// configuration.
type ServiceHandler struct {
	generateUseCase  generateUseCase
	getConfigUseCase getServiceConfigUseCase
	logger           logger.Interface
}

func NewServiceHandler(generateUC generateUseCase, getConfigUC getServiceConfigUseCase, logger logger.Interface) *ServiceHandler {
	return &ServiceHandler{
		generateUseCase:  generateUC,
		getConfigUseCase: getConfigUC,
		logger:           logger,
	}
}

// Generate godoc
// @Summary Generate content with a service
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param service path string true "service key"
// @Param request body dto.GenerateRequest true "prompt and context"
// @Success 200 {object} utils.APIResponse{data=dto.GenerateResponse}
// @Failure 403 {object} utils.APIResponse "service locked"
// @Failure 429 {object} utils.APIResponse "daily limit reached"
// @Router /services/{service}/generate [post]
func (h *ServiceHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for generate", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	service := c.Param("service")
	result, err := h.generateUseCase.Execute(c.Request.Context(), userID, service, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetConfig godoc
// @Summary Get a service configuration
// @Tags services
// @Produce json
// @Param service path string true "service key"
// @Success 200 {object} utils.APIResponse{data=admindto.ServiceConfigResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /services/config/{service} [get]
func (h *ServiceHandler) GetConfig(c *gin.Context) {
	cfg, err := h.getConfigUseCase.Execute(c.Request.Context(), c.Param("service"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", cfg)
}
