package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
)

type ServiceConfigRepository struct {
	db *gorm.DB
}

func NewServiceConfigRepository(db *gorm.DB) *ServiceConfigRepository {
	return &ServiceConfigRepository{db: db}
}

func (r *ServiceConfigRepository) GetByService(ctx context.Context, service entitlement.ServiceKey) (*serviceconfig.ServiceConfig, error) {
	var model models.ServiceConfigModel
	if err := db.GetTxFromContext(ctx, r.db).Where("service = ?", string(service)).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service config: %w", err)
	}
	return mappers.ServiceConfigToDomain(&model)
}

func (r *ServiceConfigRepository) List(ctx context.Context) ([]*serviceconfig.ServiceConfig, error) {
	var rows []*models.ServiceConfigModel
	if err := db.GetTxFromContext(ctx, r.db).Order("service ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list service configs: %w", err)
	}
	out := make([]*serviceconfig.ServiceConfig, 0, len(rows))
	for _, m := range rows {
		c, err := mappers.ServiceConfigToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ServiceConfigRepository) Upsert(ctx context.Context, c *serviceconfig.ServiceConfig) (bool, error) {
	model, err := mappers.ServiceConfigToModel(c)
	if err != nil {
		return false, err
	}
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "service"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to upsert service config: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ServiceConfigRepository) Update(ctx context.Context, c *serviceconfig.ServiceConfig) error {
	model, err := mappers.ServiceConfigToModel(c)
	if err != nil {
		return err
	}
	err = db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceConfigModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":               model.Name,
			"description":        model.Description,
			"pricing_monthly":    model.PricingMonthly,
			"pricing_annual":     model.PricingAnnual,
			"rate_limit_daily":   model.RateLimitDaily,
			"rate_limit_monthly": model.RateLimitMonthly,
			"enabled":            model.Enabled,
			"config":             model.Config,
			"updated_at":         model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update service config: %w", err)
	}
	return nil
}
