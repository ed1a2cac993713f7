package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	billingdto "github.com/konqer/konqer-api/internal/application/billing/dto"
	userdto "github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type getProfileUseCase interface {
	Execute(ctx context.Context, userID string) (*userdto.UserResponse, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, userID string) ([]*userdto.SubscriptionResponse, error)
}

type listServicesUseCase interface {
	Execute(ctx context.Context, userID string) ([]*userdto.ServiceAccessResponse, error)
}

type getHistoryUseCase interface {
	Execute(ctx context.Context, userID string, query userdto.HistoryQuery) ([]*userdto.GenerationHistoryItem, error)
}

type createCheckoutUseCase interface {
	Execute(ctx context.Context, userID string, req billingdto.CheckoutRequest) (*billingdto.CheckoutResponse, error)
}

type createPortalUseCase interface {
	Execute(ctx context.Context, userID string) (*billingdto.PortalResponse, error)
}

// UserHandler serves the caller-scoped endpoints under /user.
type UserHandler struct {
	profileUseCase       getProfileUseCase
	subscriptionsUseCase listSubscriptionsUseCase
	servicesUseCase      listServicesUseCase
	historyUseCase       getHistoryUseCase
	checkoutUseCase      createCheckoutUseCase
	portalUseCase        createPortalUseCase
	logger               logger.Interface
}

func NewUserHandler(
	profileUC getProfileUseCase,
	subscriptionsUC listSubscriptionsUseCase,
	servicesUC listServicesUseCase,
	historyUC getHistoryUseCase,
	checkoutUC createCheckoutUseCase,
	portalUC createPortalUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		profileUseCase:       profileUC,
		subscriptionsUseCase: subscriptionsUC,
		servicesUseCase:      servicesUC,
		historyUseCase:       historyUC,
		checkoutUseCase:      checkoutUC,
		portalUseCase:        portalUC,
		logger:               logger,
	}
}

// GetMe godoc
// @Summary Current user profile
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=userdto.UserResponse}
// @Router /user/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	profile, err := h.profileUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// ListSubscriptions godoc
// @Summary Subscriptions of the current user, newest first
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]userdto.SubscriptionResponse}
// @Router /user/subscriptions [get]
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	subs, err := h.subscriptionsUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", subs)
}

// ListServices godoc
// @Summary Services unlocked for the current user
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]userdto.ServiceAccessResponse}
// @Router /user/services [get]
func (h *UserHandler) ListServices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	services, err := h.servicesUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", services)
}

// GetHistory godoc
// @Summary Generation history of the current user
// @Tags user
// @Produce json
// @Security Bearer
// @Param service query string false "service key"
// @Param limit query int false "page size (max 100)"
// @Param offset query int false "offset"
// @Success 200 {object} utils.APIResponse{data=[]userdto.GenerationHistoryItem}
// @Router /user/history [get]
func (h *UserHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	window := utils.ParseWindow(c, constants.DefaultPageSize, constants.MaxPageSize)
	items, err := h.historyUseCase.Execute(c.Request.Context(), userID, userdto.HistoryQuery{
		Service: c.Query("service"),
		Limit:   window.Limit,
		Offset:  window.Offset,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

// CreateCheckout godoc
// @Summary Open a hosted checkout session
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body billingdto.CheckoutRequest true "plan"
// @Success 200 {object} utils.APIResponse{data=billingdto.CheckoutResponse}
// @Router /user/checkout [post]
func (h *UserHandler) CreateCheckout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req billingdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for checkout", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	session, err := h.checkoutUseCase.Execute(c.Request.Context(), userID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", session)
}

// CreatePortal godoc
// @Summary Open the billing portal
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=billingdto.PortalResponse}
// @Failure 400 {object} utils.APIResponse "no billing account yet"
// @Router /user/portal [post]
func (h *UserHandler) CreatePortal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	portal, err := h.portalUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", portal)
}
