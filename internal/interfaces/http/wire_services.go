package http

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/billing"
	"github.com/konqer/konqer-api/internal/application/entitlement"
	"github.com/konqer/konqer-api/internal/application/generation"
	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/infrastructure/enrichment"
	"github.com/konqer/konqer-api/internal/infrastructure/llm"
	"github.com/konqer/konqer-api/internal/infrastructure/payment"
	"github.com/konqer/konqer-api/internal/infrastructure/permission"
	"github.com/konqer/konqer-api/internal/infrastructure/ratelimit"
	"github.com/konqer/konqer-api/internal/infrastructure/template"
	"github.com/konqer/konqer-api/internal/interfaces/http/middleware"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/services/markdown"
)

// ============================================================
// Section 1: Infrastructure - repositories and outbound clients
// ============================================================

// initInfrastructure builds repositories and the clients for the identity
// provider, payment provider, model provider and enrichment API.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db, log)
	c.txMgr = db.NewTransactionManager(c.db)
	c.renderer = markdown.NewRenderer()

	location, err := biztime.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("invalid server timezone %q: %w", cfg.Server.Timezone, err)
	}
	c.location = location

	c.verifier, err = auth.NewVerifier(cfg.Auth.GetIssuer(), cfg.Auth.Audience, cfg.Auth.GetJWKSURL())
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	c.identityProvider = auth.NewKeycloakClient(&cfg.Auth, log.Named("keycloak"))
	c.gateway = payment.NewStripeGateway(&cfg.Billing, log.Named("stripe"))
	c.provider = llm.NewOpenAIProvider(&cfg.LLM, log.Named("llm"))
	c.enricher = enrichment.NewApolloEnricher(&cfg.Enrichment, log.Named("apollo"))

	c.prompts = template.NewPromptLoader(cfg.LLM.PromptsDir, log)
	if err := c.prompts.Load(); err != nil {
		return fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return nil
}

// ============================================================
// Section 2: Domain services - entitlements, generation, billing
// ============================================================

func (c *Container) initServices() {
	log := c.log

	c.entitlements = entitlement.NewService(c.repos.accessRepo, biztime.SystemClock, log.Named("entitlement"))

	c.dispatcher = generation.NewDispatcher(c.provider, c.enricher, c.prompts, log.Named("dispatch"))
	c.quota = generation.NewQuotaMeter(
		c.repos.serviceConfigRepo,
		c.repos.generationRepo,
		c.location,
		biztime.SystemClock,
		log.Named("quota"),
	)

	configs, err := c.repos.serviceConfigRepo.List(context.Background())
	if err != nil {
		log.Warnw("failed to list service configs for routine check", "error", err)
	} else {
		c.dispatcher.Validate(configs)
	}

	c.reconciler = billing.NewReconciler(
		c.repos.billingLedger,
		c.repos.userRepo,
		c.repos.subscriptionRepo,
		c.repos.paymentRepo,
		c.entitlements,
		c.txMgr,
		biztime.SystemClock,
		log.Named("billing"),
	)
}

// ============================================================
// Section 3: Middlewares - auth, admin permissions, rate limiting
// ============================================================

func (c *Container) initMiddlewares() error {
	cfg := c.cfg
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.verifier, c.ucs.resolveIdentityUC, log)

	enforcer, err := permission.NewEnforcer(c.db, log.Named("casbin"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if err := enforcer.SeedPolicies(admin.DefaultPolicies); err != nil {
		return fmt.Errorf("failed to seed admin policies: %w", err)
	}
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.repos.adminRepo, enforcer, log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil && cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	} else {
		log.Warnw("rate limiting disabled", "enabled", cfg.RateLimit.Enabled, "redis", c.redis != nil)
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, cfg.RateLimit.BurstPerMinute, log)

	return nil
}
