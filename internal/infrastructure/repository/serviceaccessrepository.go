package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
)

type ServiceAccessRepository struct {
	db *gorm.DB
}

func NewServiceAccessRepository(db *gorm.DB) *ServiceAccessRepository {
	return &ServiceAccessRepository{db: db}
}

func (r *ServiceAccessRepository) Get(ctx context.Context, userID string, service entitlement.ServiceKey) (*entitlement.ServiceAccess, error) {
	var model models.ServiceAccessModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND service = ?", userID, string(service)).
		First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service access: %w", err)
	}
	return mappers.ServiceAccessToDomain(&model)
}

// Create relies on the (user_id, service) unique index. A lost race is
// reported as a conflict without failing the enclosing transaction.
func (r *ServiceAccessRepository) Create(ctx context.Context, access *entitlement.ServiceAccess) error {
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(mappers.ServiceAccessToModel(access))
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("service access already exists")
		}
		return fmt.Errorf("failed to create service access: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("service access already exists")
	}
	return nil
}

func (r *ServiceAccessRepository) UpdateLock(ctx context.Context, access *entitlement.ServiceAccess) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceAccessModel{}).
		Where("id = ?", access.ID()).
		Updates(map[string]interface{}{
			"locked":      access.Locked(),
			"unlocked_at": access.UnlockedAt(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update service access: %w", err)
	}
	return nil
}

func (r *ServiceAccessRepository) HasUnlocked(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceAccessModel{}).
		Where("user_id = ? AND service = ? AND locked = ?", userID, string(service), false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check service access: %w", err)
	}
	return count > 0, nil
}

func (r *ServiceAccessRepository) ListByUser(ctx context.Context, userID string, unlockedOnly bool) ([]*entitlement.ServiceAccess, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID)
	if unlockedOnly {
		query = query.Where("locked = ?", false)
	}

	var rows []*models.ServiceAccessModel
	if err := query.Order("service ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list service access: %w", err)
	}

	out := make([]*entitlement.ServiceAccess, 0, len(rows))
	for _, m := range rows {
		a, err := mappers.ServiceAccessToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
