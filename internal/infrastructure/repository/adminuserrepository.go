package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/mappers"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
)

type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(ctx context.Context, u *admin.User) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.AdminUserToModel(u)).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("admin already exists")
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

func (r *AdminUserRepository) GetBySubject(ctx context.Context, subject string) (*admin.User, error) {
	var model models.AdminUserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("subject = ?", subject).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return mappers.AdminUserToDomain(&model), nil
}
