package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/konqer/konqer-api/internal/domain/payment"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Append(ctx context.Context, p *payment.Payment) error {
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mappers.PaymentToModel(p))
	if result.Error != nil {
		return fmt.Errorf("failed to append payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("payment already recorded")
	}
	return nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*payment.Payment, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []*models.PaymentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	out := make([]*payment.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, mappers.PaymentToDomain(m))
	}
	return out, nil
}

func (r *PaymentRepository) SumSucceededSince(ctx context.Context, since time.Time) (payment.RevenueSummary, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND created_at >= ?", string(payment.StatusSucceeded), since).
		Scan(&row).Error
	if err != nil {
		return payment.RevenueSummary{}, fmt.Errorf("failed to sum payments: %w", err)
	}
	return payment.RevenueSummary{TotalCents: row.Total, Count: row.Count}, nil
}
