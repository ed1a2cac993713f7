package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userusecases "github.com/konqer/konqer-api/internal/application/user/usecases"
	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/infrastructure/ratelimit"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	identity *auth.Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	return s.identity, s.err
}

type stubResolver struct {
	user *user.User
	cmd  userusecases.ResolveIdentityCommand
}

func (s *stubResolver) Execute(_ context.Context, cmd userusecases.ResolveIdentityCommand) (*user.User, error) {
	s.cmd = cmd
	return s.user, nil
}

type stubAdminRepo struct {
	admins map[string]*admin.User
}

func (s *stubAdminRepo) Create(_ context.Context, u *admin.User) error {
	s.admins[u.Subject()] = u
	return nil
}

func (s *stubAdminRepo) GetBySubject(_ context.Context, subject string) (*admin.User, error) {
	return s.admins[subject], nil
}

type stubEnforcer struct{}

func (stubEnforcer) Enforce(role admin.Role, resource, action string) (bool, error) {
	for _, p := range admin.DefaultPolicies {
		if p.Role != role {
			continue
		}
		if (p.Resource == admin.Wildcard || p.Resource == resource) && (p.Action == admin.Wildcard || p.Action == action) {
			return true, nil
		}
	}
	return false, nil
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	u, err := user.NewUser("sub-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	resolver := &stubResolver{user: u}
	m := NewAuthMiddleware(&stubVerifier{identity: &auth.Identity{Subject: "sub-1", Email: "ada@example.com", Name: "Ada"}}, resolver, logger.NewNopLogger())

	engine := gin.New()
	engine.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyUserID))
	})

	w := serve(engine, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer token"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.ID(), w.Body.String())
	assert.Equal(t, "ada@example.com", resolver.cmd.Email)

	w = serve(engine, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(engine, http.MethodGet, "/me", map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{err: errors.NewTokenExpiredError()}, &stubResolver{}, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/me", m.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer old"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_expired")
}

func TestPermissionMiddleware(t *testing.T) {
	finance, err := admin.NewUser("sub-finance", "fin@example.com", admin.RoleFinance)
	require.NoError(t, err)
	repo := &stubAdminRepo{admins: map[string]*admin.User{"sub-finance": finance}}
	m := NewPermissionMiddleware(repo, stubEnforcer{}, logger.NewNopLogger())

	engine := gin.New()
	withSubject := func(subject string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(constants.ContextKeySubject, subject)
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.GetString(constants.ContextKeyAdminRole)) }
	engine.GET("/finance/metrics", withSubject("sub-finance"), m.RequireAdmin(), m.RequirePermission(admin.ResourceMetrics, admin.ActionRead), ok)
	engine.POST("/finance/unlock", withSubject("sub-finance"), m.RequireAdmin(), m.RequirePermission(admin.ResourceEntitlements, admin.ActionWrite), ok)
	engine.GET("/stranger/metrics", withSubject("sub-user"), m.RequireAdmin(), m.RequirePermission(admin.ResourceMetrics, admin.ActionRead), ok)

	w := serve(engine, http.MethodGet, "/finance/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "finance", w.Body.String())

	w = serve(engine, http.MethodPost, "/finance/unlock", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(engine, http.MethodGet, "/stranger/metrics", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), 2, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/ping", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/ping", nil).Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), 1, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/ping", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom", map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
