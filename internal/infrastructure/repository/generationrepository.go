package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
)

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

func (r *GenerationRepository) Create(ctx context.Context, g *generation.Generation) error {
	model, err := mappers.GenerationToModel(g)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}
	return nil
}

func (r *GenerationRepository) CountSince(ctx context.Context, userID string, service entitlement.ServiceKey, since time.Time) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GenerationModel{}).
		Where("user_id = ? AND service = ? AND created_at >= ?", userID, string(service), since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}

func (r *GenerationRepository) ListHistory(ctx context.Context, filter generation.HistoryFilter) ([]*generation.Generation, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", filter.UserID)
	if filter.Service != "" {
		query = query.Where("service = ?", string(filter.Service))
	}

	var rows []*models.GenerationModel
	if err := query.Order("created_at DESC").
		Scopes(db.Window(filter.Limit, filter.Offset)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	out := make([]*generation.Generation, 0, len(rows))
	for _, m := range rows {
		g, err := mappers.GenerationToDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *GenerationRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GenerationModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}

func (r *GenerationRepository) UsageSince(ctx context.Context, since time.Time) (generation.UsageSummary, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Service string
		Count   int64
	}
	if err := tx.Model(&models.GenerationModel{}).
		Select("service, COUNT(*) AS count").
		Where("created_at >= ?", since.UTC()).
		Group("service").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return generation.UsageSummary{}, fmt.Errorf("failed to aggregate usage: %w", err)
	}

	summary := generation.UsageSummary{ByService: make([]generation.ServiceUsage, 0, len(rows))}
	for _, row := range rows {
		summary.ByService = append(summary.ByService, generation.ServiceUsage{
			Service: entitlement.ServiceKey(row.Service),
			Count:   row.Count,
		})
		summary.Total += row.Count
	}

	if err := tx.Model(&models.GenerationModel{}).
		Where("created_at >= ?", since.UTC()).
		Distinct("user_id").
		Count(&summary.UniqueUsers).Error; err != nil {
		return generation.UsageSummary{}, fmt.Errorf("failed to count unique users: %w", err)
	}

	return summary, nil
}
