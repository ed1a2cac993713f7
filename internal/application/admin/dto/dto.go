package dto

import (
	"time"

	userdto "github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/domain/user"
)

// PlanMRR is one plan's share of recurring revenue, in cents.
type PlanMRR struct {
	Count int64 `json:"count"`
	MRR   int64 `json:"mrr"`
}

type MRRResponse struct {
	MRR                 int64              `json:"mrr"`
	ARR                 int64              `json:"arr"`
	ActiveSubscriptions int64              `json:"active_subscriptions"`
	Breakdown           map[string]PlanMRR `json:"subscription_breakdown"`
	Currency            string             `json:"currency"`
	GeneratedAt         time.Time          `json:"generated_at"`
}

// RevenueResponse sums succeeded payments over PeriodDays. Amounts are cents.
type RevenueResponse struct {
	TotalRevenue   int64  `json:"total_revenue"`
	PaymentCount   int64  `json:"payment_count"`
	AveragePayment int64  `json:"average_payment"`
	PeriodDays     int    `json:"period_days"`
	Currency       string `json:"currency"`
}

type AdminUser struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	BillingCustomerID string    `json:"billing_customer_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users    []*AdminUser `json:"users"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type AdminServiceAccess struct {
	Service    string     `json:"service"`
	Locked     bool       `json:"locked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type AdminPayment struct {
	ID              string    `json:"id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type UserDetailResponse struct {
	User            *AdminUser                      `json:"user"`
	Subscriptions   []*userdto.SubscriptionResponse `json:"subscriptions"`
	Services        []*AdminServiceAccess           `json:"services"`
	GenerationCount int64                           `json:"generation_count"`
	RecentPayments  []*AdminPayment                 `json:"recent_payments"`
}

// ServiceAccessChange is the result of an admin unlock or lock.
type ServiceAccessChange struct {
	UserID  string `json:"user_id"`
	Service string `json:"service"`
	Locked  bool   `json:"locked"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// UpdateServiceConfigRequest is a partial update; absent fields are kept.
type UpdateServiceConfigRequest struct {
	Name             *string        `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description      *string        `json:"description,omitempty"`
	PricingMonthly   *int64         `json:"pricing_monthly,omitempty" binding:"omitempty,gte=0"`
	PricingAnnual    *int64         `json:"pricing_annual,omitempty" binding:"omitempty,gte=0"`
	RateLimitDaily   *int           `json:"rate_limit_daily,omitempty" binding:"omitempty,gte=1"`
	RateLimitMonthly *int           `json:"rate_limit_monthly,omitempty" binding:"omitempty,gte=1"`
	Enabled          *bool          `json:"enabled,omitempty"`
	Config           map[string]any `json:"config,omitempty"`
}

// ServiceConfigResponse is shared by the public and admin config endpoints.
type ServiceConfigResponse struct {
	Service          string         `json:"service"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Kind             string         `json:"kind,omitempty"`
	Description      string         `json:"description"`
	PricingMonthly   int64          `json:"pricing_monthly"`
	PricingAnnual    int64          `json:"pricing_annual"`
	RateLimitDaily   int            `json:"rate_limit_daily"`
	RateLimitMonthly int            `json:"rate_limit_monthly"`
	Enabled          bool           `json:"enabled"`
	Config           map[string]any `json:"config"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type ServiceUsage struct {
	Service string `json:"service"`
	Count   int64  `json:"count"`
}

type UsageResponse struct {
	UsageByService   []ServiceUsage `json:"usage_by_service"`
	TotalGenerations int64          `json:"total_generations"`
	UniqueUsers      int64          `json:"unique_users"`
	PeriodDays       int            `json:"period_days"`
}

func ToAdminUser(u *user.User) *AdminUser {
	return &AdminUser{
		ID:                u.ID(),
		Email:             u.Email(),
		Name:              u.Name(),
		BillingCustomerID: u.BillingCustomerID(),
		CreatedAt:         u.CreatedAt(),
	}
}

func ToAdminServiceAccess(grants []*entitlement.ServiceAccess) []*AdminServiceAccess {
	out := make([]*AdminServiceAccess, 0, len(grants))
	for _, g := range grants {
		out = append(out, &AdminServiceAccess{
			Service:    g.Service().String(),
			Locked:     g.Locked(),
			UnlockedAt: g.UnlockedAt(),
		})
	}
	return out
}

func ToAdminPayments(payments []*payment.Payment) []*AdminPayment {
	out := make([]*AdminPayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, &AdminPayment{
			ID:              p.ID(),
			Amount:          p.Amount(),
			Currency:        p.Currency(),
			Status:          string(p.Status()),
			PaymentMethod:   p.PaymentMethod(),
			PaymentIntentID: p.PaymentIntentID(),
			CreatedAt:       p.CreatedAt(),
		})
	}
	return out
}

func ToServiceConfigResponse(c *serviceconfig.ServiceConfig) *ServiceConfigResponse {
	return &ServiceConfigResponse{
		Service:          c.Service().String(),
		Name:             c.Name(),
		Slug:             c.Slug(),
		Kind:             c.Kind(),
		Description:      c.Description(),
		PricingMonthly:   c.PricingMonthly(),
		PricingAnnual:    c.PricingAnnual(),
		RateLimitDaily:   c.RateLimitDaily(),
		RateLimitMonthly: c.RateLimitMonthly(),
		Enabled:          c.Enabled(),
		Config:           c.Settings(),
		UpdatedAt:        c.UpdatedAt(),
	}
}
