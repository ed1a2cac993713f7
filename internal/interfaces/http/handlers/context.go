package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

// currentUserID returns the local user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
