package generation

import (
	"context"
	"time"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

// HistoryFilter selects a user's generations, newest first.
type HistoryFilter struct {
	UserID  string
	Service entitlement.ServiceKey // empty means all services
	Limit   int
	Offset  int
}

// ServiceUsage is the generation count of one service.
type ServiceUsage struct {
	Service entitlement.ServiceKey
	Count   int64
}

// UsageSummary aggregates generations over a window.
type UsageSummary struct {
	ByService   []ServiceUsage
	Total       int64
	UniqueUsers int64
}

type Repository interface {
	Create(ctx context.Context, g *Generation) error
	// CountSince counts the user's generations of one service created at or
	// after since.
	CountSince(ctx context.Context, userID string, service entitlement.ServiceKey, since time.Time) (int64, error)
	ListHistory(ctx context.Context, filter HistoryFilter) ([]*Generation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	UsageSince(ctx context.Context, since time.Time) (UsageSummary, error)
}
