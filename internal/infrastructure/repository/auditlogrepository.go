package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/domain/audit"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, l *audit.Log) error {
	model, err := mappers.AuditLogToModel(l)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*audit.Log, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []*models.AuditLogModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	out := make([]*audit.Log, 0, len(rows))
	for _, m := range rows {
		l, err := mappers.AuditLogToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
