package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/billing/dto"
	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type CreatePortalUseCase struct {
	userRepo user.Repository
	gateway  billing.Gateway
	logger   logger.Interface
}

func NewCreatePortalUseCase(userRepo user.Repository, gateway billing.Gateway, logger logger.Interface) *CreatePortalUseCase {
	return &CreatePortalUseCase{
		userRepo: userRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *CreatePortalUseCase) Execute(ctx context.Context, userID string) (*dto.PortalResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	if !u.HasBillingCustomer() {
		return nil, errors.NewBadRequestError("No billing account found. Complete a checkout first.")
	}

	url, err := uc.gateway.CreatePortalSession(ctx, u.BillingCustomerID())
	if err != nil {
		uc.logger.Errorw("failed to create portal session", "error", err, "user_id", userID)
		return nil, errors.NewInternalError("failed to create portal session")
	}

	uc.logger.Infow("portal session created", "user_id", userID)
	return &dto.PortalResponse{PortalURL: url}, nil
}
