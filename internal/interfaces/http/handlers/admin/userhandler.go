package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, filter user.ListFilter) (*dto.UserListResponse, error)
}

type getUserDetailUseCase interface {
	Execute(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
}

type AdminUserHandler struct {
	listUC   listUsersUseCase
	detailUC getUserDetailUseCase
	logger   logger.Interface
}

func NewAdminUserHandler(listUC listUsersUseCase, detailUC getUserDetailUseCase, log logger.Interface) *AdminUserHandler {
	return &AdminUserHandler{
		listUC:   listUC,
		detailUC: detailUC,
		logger:   log,
	}
}

// ListUsers handles GET /admin/users?search=&page=&page_size=
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c, constants.DefaultPageSize, constants.MaxPageSize)
	resp, err := h.listUC.Execute(c.Request.Context(), user.ListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, resp.Users, resp.Total, resp.Page, resp.PageSize)
}

// GetUser handles GET /admin/users/:id
func (h *AdminUserHandler) GetUser(c *gin.Context) {
	userID, err := utils.ParseUUIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.detailUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
