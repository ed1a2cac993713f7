package http

import (
	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/domain/audit"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/repository"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo          user.Repository
	subscriptionRepo  subscription.Repository
	paymentRepo       payment.Repository
	accessRepo        entitlement.Repository
	serviceConfigRepo serviceconfig.Repository
	generationRepo    generation.Repository
	billingLedger     billing.Ledger
	auditRepo         audit.Repository
	adminRepo         admin.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:          repository.NewUserRepository(db, log),
		subscriptionRepo:  repository.NewSubscriptionRepository(db, log),
		paymentRepo:       repository.NewPaymentRepository(db),
		accessRepo:        repository.NewServiceAccessRepository(db),
		serviceConfigRepo: repository.NewServiceConfigRepository(db),
		generationRepo:    repository.NewGenerationRepository(db),
		billingLedger:     repository.NewBillingEventRepository(db),
		auditRepo:         repository.NewAuditLogRepository(db),
		adminRepo:         repository.NewAdminUserRepository(db),
	}
}
