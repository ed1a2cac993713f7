package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	userdto "github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

const recentPaymentsLimit = 10

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, filter user.ListFilter) (*dto.UserListResponse, error) {
	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err, "search", filter.Search)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &dto.UserListResponse{
		Users:    make([]*dto.AdminUser, 0, len(users)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.ToAdminUser(u))
	}
	return resp, nil
}

// GetUserDetailUseCase assembles the support view of one user. The reads
// are independent and run concurrently.
type GetUserDetailUseCase struct {
	userRepo         user.Repository
	subscriptionRepo subscription.Repository
	accessRepo       entitlement.Repository
	generationRepo   generation.Repository
	paymentRepo      payment.Repository
	logger           logger.Interface
}

func NewGetUserDetailUseCase(
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	accessRepo entitlement.Repository,
	generationRepo generation.Repository,
	paymentRepo payment.Repository,
	logger logger.Interface,
) *GetUserDetailUseCase {
	return &GetUserDetailUseCase{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		accessRepo:       accessRepo,
		generationRepo:   generationRepo,
		paymentRepo:      paymentRepo,
		logger:           logger,
	}
}

func (uc *GetUserDetailUseCase) Execute(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	var (
		subs     []*subscription.Subscription
		grants   []*entitlement.ServiceAccess
		count    int64
		payments []*payment.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = uc.subscriptionRepo.ListByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		grants, err = uc.accessRepo.ListByUser(gctx, userID, false)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = uc.generationRepo.CountByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = uc.paymentRepo.ListByUser(gctx, userID, recentPaymentsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to load user detail", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load user detail: %w", err)
	}

	return &dto.UserDetailResponse{
		User:            dto.ToAdminUser(u),
		Subscriptions:   userdto.ToSubscriptionResponses(subs),
		Services:        dto.ToAdminServiceAccess(grants),
		GenerationCount: count,
		RecentPayments:  dto.ToAdminPayments(payments),
	}, nil
}
