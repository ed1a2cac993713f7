package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/billing/dto"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// CreateCheckoutUseCase opens a hosted checkout for one plan. Nothing is
// persisted here; the subscription appears when the provider reports the
// completed session.
type CreateCheckoutUseCase struct {
	userRepo   user.Repository
	configRepo serviceconfig.Repository
	gateway    billing.Gateway
	priceIDs   map[string]string
	logger     logger.Interface
}

func NewCreateCheckoutUseCase(
	userRepo user.Repository,
	configRepo serviceconfig.Repository,
	gateway billing.Gateway,
	priceIDs map[string]string,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		userRepo:   userRepo,
		configRepo: configRepo,
		gateway:    gateway,
		priceIDs:   priceIDs,
		logger:     logger,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, userID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	plan, err := subscription.ParsePlan(req.Plan)
	if err != nil {
		return nil, errors.NewValidationError("invalid plan", err.Error())
	}

	var service string
	if plan.IsSingle() {
		key, err := entitlement.ParseServiceKey(req.Service)
		if err != nil {
			return nil, errors.NewValidationError("service is required for single-service plans")
		}
		cfg, err := uc.configRepo.GetByService(ctx, key)
		if err != nil {
			uc.logger.Errorw("failed to get service config", "error", err, "service", key)
			return nil, fmt.Errorf("failed to get service config: %w", err)
		}
		// Single plans can only buy a catalogued, enabled service.
		if cfg == nil || !cfg.Enabled() {
			return nil, errors.NewValidationError("service is not available for purchase", key.String())
		}
		service = key.String()
	}

	priceID := uc.priceIDs[plan.String()]
	if priceID == "" {
		uc.logger.Errorw("no price configured for plan", "plan", plan)
		return nil, errors.NewInternalError("plan is not available for purchase")
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	sess, err := uc.gateway.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		UserID:        u.ID(),
		Email:         u.Email(),
		CustomerID:    u.BillingCustomerID(),
		Plan:          plan.String(),
		Service:       service,
		PriceID:       priceID,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "error", err, "user_id", userID, "plan", plan)
		return nil, errors.NewInternalError("failed to create checkout session")
	}

	uc.logger.Infow("checkout session created",
		"user_id", userID,
		"plan", plan,
		"service", service,
		"session_id", sess.ID,
	)

	return &dto.CheckoutResponse{CheckoutURL: sess.URL, SessionID: sess.ID}, nil
}
