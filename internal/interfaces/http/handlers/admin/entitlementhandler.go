package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/application/admin/usecases"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type setServiceAccessUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetServiceAccessCommand) (*dto.ServiceAccessChange, error)
}

// AdminEntitlementHandler overrides a user's service grants.
type AdminEntitlementHandler struct {
	setAccessUC setServiceAccessUseCase
	logger      logger.Interface
}

func NewAdminEntitlementHandler(setAccessUC setServiceAccessUseCase, log logger.Interface) *AdminEntitlementHandler {
	return &AdminEntitlementHandler{
		setAccessUC: setAccessUC,
		logger:      log,
	}
}

// Unlock handles POST /admin/users/:id/unlock/:service
func (h *AdminEntitlementHandler) Unlock(c *gin.Context) {
	h.setAccess(c, false)
}

// Lock handles POST /admin/users/:id/lock/:service
func (h *AdminEntitlementHandler) Lock(c *gin.Context) {
	h.setAccess(c, true)
}

func (h *AdminEntitlementHandler) setAccess(c *gin.Context, locked bool) {
	userID, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.setAccessUC.Execute(c.Request.Context(), usecases.SetServiceAccessCommand{
		ActorID: c.GetString(constants.ContextKeyAdminID),
		UserID:  userID,
		Service: c.Param("service"),
		Locked:  locked,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, resp.Message, resp)
}
