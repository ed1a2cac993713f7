package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// GetMRRUseCase computes recurring revenue over active subscriptions.
// Annual plans contribute a twelfth of their yearly price.
type GetMRRUseCase struct {
	subscriptionRepo subscription.Repository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetMRRUseCase(subscriptionRepo subscription.Repository, clock biztime.Clock, logger logger.Interface) *GetMRRUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &GetMRRUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetMRRUseCase) Execute(ctx context.Context) (*dto.MRRResponse, error) {
	counts, err := uc.subscriptionRepo.CountActiveByPlan(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count active subscriptions", "error", err)
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	resp := &dto.MRRResponse{
		Breakdown:   make(map[string]dto.PlanMRR, len(subscription.Plans)),
		Currency:    constants.DefaultCurrency,
		GeneratedAt: uc.clock().UTC(),
	}

	var arr int64
	for _, plan := range subscription.Plans {
		n := counts[plan]
		annual := plan.AnnualRecurringCents() * n
		arr += annual
		resp.ActiveSubscriptions += n
		resp.Breakdown[plan.String()] = dto.PlanMRR{Count: n, MRR: annual / 12}
	}
	resp.MRR = arr / 12
	resp.ARR = arr

	return resp, nil
}

type GetRevenueUseCase struct {
	paymentRepo payment.Repository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewGetRevenueUseCase(paymentRepo payment.Repository, clock biztime.Clock, logger logger.Interface) *GetRevenueUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &GetRevenueUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
		logger:      logger,
	}
}

// Execute sums succeeded payments created in the last days days.
func (uc *GetRevenueUseCase) Execute(ctx context.Context, days int) (*dto.RevenueResponse, error) {
	since := uc.clock().UTC().AddDate(0, 0, -days)

	summary, err := uc.paymentRepo.SumSucceededSince(ctx, since)
	if err != nil {
		uc.logger.Errorw("failed to sum payments", "error", err, "days", days)
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	resp := &dto.RevenueResponse{
		TotalRevenue: summary.TotalCents,
		PaymentCount: summary.Count,
		PeriodDays:   days,
		Currency:     constants.DefaultCurrency,
	}
	if summary.Count > 0 {
		resp.AveragePayment = summary.TotalCents / summary.Count
	}
	return resp, nil
}

type GetUsageAnalyticsUseCase struct {
	generationRepo generation.Repository
	clock          biztime.Clock
	logger         logger.Interface
}

func NewGetUsageAnalyticsUseCase(generationRepo generation.Repository, clock biztime.Clock, logger logger.Interface) *GetUsageAnalyticsUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &GetUsageAnalyticsUseCase{
		generationRepo: generationRepo,
		clock:          clock,
		logger:         logger,
	}
}

func (uc *GetUsageAnalyticsUseCase) Execute(ctx context.Context, days int) (*dto.UsageResponse, error) {
	since := uc.clock().UTC().AddDate(0, 0, -days)

	summary, err := uc.generationRepo.UsageSince(ctx, since)
	if err != nil {
		uc.logger.Errorw("failed to aggregate usage", "error", err, "days", days)
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	resp := &dto.UsageResponse{
		UsageByService:   make([]dto.ServiceUsage, 0, len(summary.ByService)),
		TotalGenerations: summary.Total,
		UniqueUsers:      summary.UniqueUsers,
		PeriodDays:       days,
	}
	for _, u := range summary.ByService {
		resp.UsageByService = append(resp.UsageByService, dto.ServiceUsage{Service: u.Service.String(), Count: u.Count})
	}
	return resp, nil
}
