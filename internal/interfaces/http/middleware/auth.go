package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userusecases "github.com/konqer/konqer-api/internal/application/user/usecases"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*auth.Identity, error)
}

type identityResolver interface {
	Execute(ctx context.Context, cmd userusecases.ResolveIdentityCommand) (*user.User, error)
}

// AuthMiddleware verifies the bearer token and maps it to the local user.
type AuthMiddleware struct {
	verifier tokenVerifier
	resolver identityResolver
	logger   logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, resolver identityResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		resolver: resolver,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		u, err := m.resolver.Execute(c.Request.Context(), userusecases.ResolveIdentityCommand{
			Subject: identity.Subject,
			Email:   identity.Email,
			Name:    identity.Name,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeySubject, identity.Subject)

		c.Next()
	}
}
