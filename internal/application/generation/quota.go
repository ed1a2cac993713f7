package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// QuotaDecision is the outcome of a daily quota check. Limit is zero when
// the service has no configuration and is therefore unmetered.
type QuotaDecision struct {
	Allowed bool
	Limit   int
	Used    int64
	ResetAt time.Time
}

// QuotaMeter counts today's generations against the service's daily
// limit. The check is point-in-time, not a reservation: concurrent
// requests at limit-1 may all pass.
type QuotaMeter struct {
	configRepo     serviceconfig.Repository
	generationRepo generation.Repository
	location       *time.Location
	clock          biztime.Clock
	logger         logger.Interface
}

func NewQuotaMeter(
	configRepo serviceconfig.Repository,
	generationRepo generation.Repository,
	location *time.Location,
	clock biztime.Clock,
	logger logger.Interface,
) *QuotaMeter {
	if location == nil {
		location = time.UTC
	}
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &QuotaMeter{
		configRepo:     configRepo,
		generationRepo: generationRepo,
		location:       location,
		clock:          clock,
		logger:         logger,
	}
}

// Check evaluates the quota. A service without configuration is allowed.
func (m *QuotaMeter) Check(ctx context.Context, userID string, service entitlement.ServiceKey) (*QuotaDecision, error) {
	now := m.clock()
	decision := &QuotaDecision{
		Allowed: true,
		ResetAt: biztime.NextDayStartUTC(now, m.location),
	}

	cfg, err := m.configRepo.GetByService(ctx, service)
	if err != nil {
		m.logger.Errorw("failed to get service config", "error", err, "service", service)
		return nil, fmt.Errorf("failed to get service config: %w", err)
	}
	if cfg == nil {
		m.logger.Warnw("no config for service, quota not enforced", "service", service)
		return decision, nil
	}

	since := biztime.StartOfDayUTC(now, m.location)
	used, err := m.generationRepo.CountSince(ctx, userID, service, since)
	if err != nil {
		m.logger.Errorw("failed to count generations", "error", err, "user_id", userID, "service", service)
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}

	decision.Limit = cfg.RateLimitDaily()
	decision.Used = used
	decision.Allowed = used < int64(cfg.RateLimitDaily())

	m.logger.Debugw("daily quota checked",
		"user_id", userID,
		"service", service,
		"used", used,
		"limit", decision.Limit,
		"allowed", decision.Allowed,
	)
	return decision, nil
}

// WithinDailyLimit reports whether one more generation is allowed today.
func (m *QuotaMeter) WithinDailyLimit(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error) {
	decision, err := m.Check(ctx, userID, service)
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}
