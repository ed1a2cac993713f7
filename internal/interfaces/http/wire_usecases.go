package http

import (
	adminUsecases "github.com/konqer/konqer-api/internal/application/admin/usecases"
	authUsecases "github.com/konqer/konqer-api/internal/application/auth/usecases"
	billingUsecases "github.com/konqer/konqer-api/internal/application/billing/usecases"
	generationUsecases "github.com/konqer/konqer-api/internal/application/generation/usecases"
	"github.com/konqer/konqer-api/internal/application/user/usecases"
	"github.com/konqer/konqer-api/internal/shared/biztime"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Auth
	exchangeTokenUC *authUsecases.ExchangeTokenUseCase
	refreshTokenUC  *authUsecases.RefreshTokenUseCase
	logoutUC        *authUsecases.LogoutUseCase

	// User
	resolveIdentityUC   *usecases.ResolveIdentityUseCase
	getProfileUC        *usecases.GetProfileUseCase
	listSubscriptionsUC *usecases.ListSubscriptionsUseCase
	listServicesUC      *usecases.ListServicesUseCase
	getHistoryUC        *usecases.GetHistoryUseCase

	// Generation
	generateUC *generationUsecases.GenerateUseCase

	// Billing
	createCheckoutUC *billingUsecases.CreateCheckoutUseCase
	createPortalUC   *billingUsecases.CreatePortalUseCase

	// Admin
	getMRRUC              *adminUsecases.GetMRRUseCase
	getRevenueUC          *adminUsecases.GetRevenueUseCase
	getUsageUC            *adminUsecases.GetUsageAnalyticsUseCase
	listUsersUC           *adminUsecases.ListUsersUseCase
	getUserDetailUC       *adminUsecases.GetUserDetailUseCase
	setServiceAccessUC    *adminUsecases.SetServiceAccessUseCase
	updateServiceConfigUC *adminUsecases.UpdateServiceConfigUseCase
	getServiceConfigUC    *adminUsecases.GetServiceConfigUseCase
}

// ============================================================
// Section 4: Use cases
// ============================================================

func (c *Container) initUseCases() {
	log := c.log
	repos := c.repos
	clock := biztime.SystemClock

	c.ucs = &allUseCases{
		exchangeTokenUC: authUsecases.NewExchangeTokenUseCase(c.identityProvider, log),
		refreshTokenUC:  authUsecases.NewRefreshTokenUseCase(c.identityProvider, log),
		logoutUC:        authUsecases.NewLogoutUseCase(c.identityProvider, log),

		resolveIdentityUC:   usecases.NewResolveIdentityUseCase(repos.userRepo, log),
		getProfileUC:        usecases.NewGetProfileUseCase(repos.userRepo, log),
		listSubscriptionsUC: usecases.NewListSubscriptionsUseCase(repos.subscriptionRepo, log),
		listServicesUC:      usecases.NewListServicesUseCase(c.entitlements),
		getHistoryUC:        usecases.NewGetHistoryUseCase(repos.generationRepo, log),

		generateUC: generationUsecases.NewGenerateUseCase(
			c.entitlements,
			c.quota,
			c.dispatcher,
			repos.generationRepo,
			c.txMgr,
			c.renderer,
			clock,
			log.Named("generate"),
		),

		createCheckoutUC: billingUsecases.NewCreateCheckoutUseCase(repos.userRepo, repos.serviceConfigRepo, c.gateway, c.cfg.Billing.PriceIDs, log),
		createPortalUC:   billingUsecases.NewCreatePortalUseCase(repos.userRepo, c.gateway, log),

		getMRRUC:     adminUsecases.NewGetMRRUseCase(repos.subscriptionRepo, clock, log),
		getRevenueUC: adminUsecases.NewGetRevenueUseCase(repos.paymentRepo, clock, log),
		getUsageUC:   adminUsecases.NewGetUsageAnalyticsUseCase(repos.generationRepo, clock, log),
		listUsersUC:  adminUsecases.NewListUsersUseCase(repos.userRepo, log),
		getUserDetailUC: adminUsecases.NewGetUserDetailUseCase(
			repos.userRepo,
			repos.subscriptionRepo,
			repos.accessRepo,
			repos.generationRepo,
			repos.paymentRepo,
			log,
		),
		setServiceAccessUC: adminUsecases.NewSetServiceAccessUseCase(
			repos.userRepo,
			repos.serviceConfigRepo,
			c.entitlements,
			repos.auditRepo,
			c.txMgr,
			log,
		),
		updateServiceConfigUC: adminUsecases.NewUpdateServiceConfigUseCase(repos.serviceConfigRepo, repos.auditRepo, c.txMgr, log),
		getServiceConfigUC:    adminUsecases.NewGetServiceConfigUseCase(repos.serviceConfigRepo, log),
	}
}
