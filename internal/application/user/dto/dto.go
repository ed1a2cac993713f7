package dto

import (
	"time"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/domain/user"
)

// UserResponse is the caller's profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionResponse struct {
	ID                string     `json:"id"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ServiceAccessResponse struct {
	Service    string     `json:"service"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// GenerationHistoryItem is one past generation of the caller.
type GenerationHistoryItem struct {
	ID                   string    `json:"id"`
	Service              string    `json:"service"`
	Prompt               string    `json:"prompt"`
	Output               string    `json:"output"`
	PersonalizationScore *int      `json:"personalization_score"`
	TokensUsed           int       `json:"tokens_used"`
	CreatedAt            time.Time `json:"created_at"`
}

// HistoryQuery filters the history listing. Service is optional.
type HistoryQuery struct {
	Service string
	Limit   int
	Offset  int
}

func ToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToSubscriptionResponses(subs []*subscription.Subscription) []*SubscriptionResponse {
	out := make([]*SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, &SubscriptionResponse{
			ID:                s.ID(),
			Plan:              s.Plan().String(),
			Status:            s.Status().String(),
			CurrentPeriodEnd:  s.CurrentPeriodEnd(),
			CancelAtPeriodEnd: s.CancelAtPeriodEnd(),
			CreatedAt:         s.CreatedAt(),
		})
	}
	return out
}

func ToServiceAccessResponses(grants []*entitlement.ServiceAccess) []*ServiceAccessResponse {
	out := make([]*ServiceAccessResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, &ServiceAccessResponse{
			Service:    g.Service().String(),
			UnlockedAt: g.UnlockedAt(),
		})
	}
	return out
}

func ToHistoryItems(gens []*generation.Generation) []*GenerationHistoryItem {
	out := make([]*GenerationHistoryItem, 0, len(gens))
	for _, g := range gens {
		out = append(out, &GenerationHistoryItem{
			ID:                   g.ID(),
			Service:              g.Service().String(),
			Prompt:               g.Prompt(),
			Output:               g.Output(),
			PersonalizationScore: g.PersonalizationScore(),
			TokensUsed:           g.TokensUsed(),
			CreatedAt:            g.CreatedAt(),
		})
	}
	return out
}
