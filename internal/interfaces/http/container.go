package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/application/billing"
	"github.com/konqer/konqer-api/internal/application/entitlement"
	"github.com/konqer/konqer-api/internal/application/generation"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/infrastructure/config"
	"github.com/konqer/konqer-api/internal/infrastructure/enrichment"
	"github.com/konqer/konqer-api/internal/infrastructure/llm"
	"github.com/konqer/konqer-api/internal/infrastructure/payment"
	"github.com/konqer/konqer-api/internal/infrastructure/template"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/services/markdown"
)

// Container holds infrastructure clients, repositories, use cases, handlers
// and middlewares, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when Redis is unavailable

	txMgr    *db.TransactionManager
	renderer markdown.Renderer
	location *time.Location

	// Outbound clients
	verifier         *auth.Verifier
	identityProvider *auth.KeycloakClient
	gateway          *payment.StripeGateway
	provider         *llm.OpenAIProvider
	enricher         *enrichment.ApolloEnricher
	prompts          *template.PromptLoader

	// Domain services
	entitlements *entitlement.ServiceImpl
	dispatcher   *generation.Dispatcher
	quota        *generation.QuotaMeter
	reconciler   *billing.Reconciler

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires every component. redisClient may be nil, in which
// case rate limiting is off.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initServices()
	c.initUseCases()
	if err := c.initMiddlewares(); err != nil {
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

// Shutdown releases the clients owned by the container. The database is
// closed by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
