package payment

import (
	"context"
	"time"
)

// RevenueSummary aggregates succeeded payments over a window.
type RevenueSummary struct {
	TotalCents int64
	Count      int64
}

// Repository appends ledger entries. There is no update path.
type Repository interface {
	// Append inserts p. A duplicate payment intent id is returned as a
	// conflict AppError.
	Append(ctx context.Context, p *Payment) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Payment, error)
	SumSucceededSince(ctx context.Context, since time.Time) (RevenueSummary, error)
}
