package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/domain/subscription"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, s *subscription.Subscription) error {
	model := r.mapper.ToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("subscription already exists")
		}
		r.logger.Errorw("failed to create subscription", "user_id", s.UserID(), "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID, "plan", model.Plan)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.first(db.GetTxFromContext(ctx, r.db), "id = ?", id)
}

func (r *SubscriptionRepositoryImpl) GetByExternalID(ctx context.Context, externalID string) (*subscription.Subscription, error) {
	if externalID == "" {
		return nil, nil
	}
	return r.first(db.GetTxFromContext(ctx, r.db), "external_id = ?", externalID)
}

func (r *SubscriptionRepositoryImpl) GetByExternalIDForUpdate(ctx context.Context, externalID string) (*subscription.Subscription, error) {
	if externalID == "" {
		return nil, nil
	}
	return r.first(db.ForUpdate(db.GetTxFromContext(ctx, r.db)), "external_id = ?", externalID)
}

func (r *SubscriptionRepositoryImpl) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*subscription.Subscription, error) {
	if sessionID == "" {
		return nil, nil
	}
	return r.first(db.GetTxFromContext(ctx, r.db), "checkout_session_id = ?", sessionID)
}

func (r *SubscriptionRepositoryImpl) first(tx *gorm.DB, query string, arg any) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// Update is a compare-and-set on the version column.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, s *subscription.Subscription) error {
	model := r.mapper.ToModel(s)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"status":               model.Status,
			"external_id":          model.ExternalID,
			"current_period_start": model.CurrentPeriodStart,
			"current_period_end":   model.CurrentPeriodEnd,
			"cancel_at_period_end": model.CancelAtPeriodEnd,
			"canceled_at":          model.CanceledAt,
			"version":              model.Version + 1,
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrVersionConflict
	}

	s.IncrementVersion()
	return nil
}

func (r *SubscriptionRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *SubscriptionRepositoryImpl) CountActiveByPlan(ctx context.Context) (map[subscription.Plan]int64, error) {
	var rows []struct {
		Plan  string
		Count int64
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Select("plan, COUNT(*) AS count").
		Where("status = ?", string(subscription.StatusActive)).
		Group("plan").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	counts := make(map[subscription.Plan]int64, len(rows))
	for _, row := range rows {
		counts[subscription.Plan(row.Plan)] = row.Count
	}
	return counts, nil
}
