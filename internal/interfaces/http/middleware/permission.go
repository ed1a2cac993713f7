package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

// PermissionMiddleware guards the admin API. It runs after RequireAuth and
// looks the caller's subject up in admin_users.
type PermissionMiddleware struct {
	adminRepo admin.Repository
	enforcer  admin.PermissionEnforcer
	logger    logger.Interface
}

func NewPermissionMiddleware(adminRepo admin.Repository, enforcer admin.PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		adminRepo: adminRepo,
		enforcer:  enforcer,
		logger:    logger,
	}
}

// RequireAdmin rejects callers without an active admin row and stores the
// admin id and role on the context.
func (m *PermissionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(constants.ContextKeySubject)
		if subject == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		adminUser, err := m.adminRepo.GetBySubject(c.Request.Context(), subject)
		if err != nil {
			m.logger.Errorw("failed to get admin user", "error", err, "subject", subject)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}
		if adminUser == nil || !adminUser.Active() {
			m.logger.Warnw("admin access denied", "subject", subject)
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAdminID, adminUser.ID())
		c.Set(constants.ContextKeyAdminRole, adminUser.Role().String())
		c.Next()
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := admin.Role(c.GetString(constants.ContextKeyAdminRole))
		if role == "" {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "admin_id", c.GetString(constants.ContextKeyAdminID), "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
