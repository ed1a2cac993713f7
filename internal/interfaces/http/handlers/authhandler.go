package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/application/auth/dto"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

// AuthHandler proxies the identity provider's token endpoints so the
// frontend never holds the client secret.
type AuthHandler struct {
	exchangeUseCase exchangeTokenUseCase
	refreshUseCase  refreshTokenUseCase
	logoutUseCase   logoutUseCase
	logger          logger.Interface
}

func NewAuthHandler(
	exchangeUC exchangeTokenUseCase,
	refreshUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		exchangeUseCase: exchangeUC,
		refreshUseCase:  refreshUC,
		logoutUseCase:   logoutUC,
		logger:          logger,
	}
}

// ExchangeToken godoc
// @Summary Exchange an authorization code for tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ExchangeTokenRequest true "authorization code"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/exchange-token [post]
func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	var req dto.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for exchange token", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	tokens, err := h.exchangeUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("failed to exchange authorization code", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tokens)
}

// RefreshToken godoc
// @Summary Refresh an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "refresh token"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	tokens, err := h.refreshUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("failed to refresh token", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tokens)
}

// Logout godoc
// @Summary End the identity provider session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "refresh token"
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), req); err != nil {
		h.logger.Warnw("failed to logout", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}
