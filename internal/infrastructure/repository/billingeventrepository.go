package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/konqer/konqer-api/internal/domain/billing"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
)

// BillingEventRepository is the processed-event ledger.
type BillingEventRepository struct {
	db *gorm.DB
}

func NewBillingEventRepository(db *gorm.DB) *BillingEventRepository {
	return &BillingEventRepository{db: db}
}

func (r *BillingEventRepository) Record(ctx context.Context, eventID string, kind billing.EventKind) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BillingEventModel{
			EventID:     eventID,
			Kind:        string(kind),
			ProcessedAt: time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to record billing event: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
