package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                u.ID(),
		Subject:           u.Subject(),
		Email:             u.Email(),
		Name:              u.Name(),
		BillingCustomerID: nullable(u.BillingCustomerID()),
		CreatedAt:         u.CreatedAt(),
		UpdatedAt:         u.UpdatedAt(),
	}
}

func UserToDomain(m *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(m.ID, m.Subject, m.Email, m.Name, deref(m.BillingCustomerID), m.CreatedAt, m.UpdatedAt)
}
