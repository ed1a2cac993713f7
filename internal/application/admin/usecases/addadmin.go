package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/domain/admin"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type AddAdminCommand struct {
	Subject string
	Email   string
	Role    string
}

// AddAdminUseCase registers an identity-provider subject as an admin.
// It backs the `migrate admin add` command; there is no HTTP route for it.
type AddAdminUseCase struct {
	adminRepo admin.Repository
	logger    logger.Interface
}

func NewAddAdminUseCase(adminRepo admin.Repository, logger logger.Interface) *AddAdminUseCase {
	return &AddAdminUseCase{adminRepo: adminRepo, logger: logger}
}

func (uc *AddAdminUseCase) Execute(ctx context.Context, cmd AddAdminCommand) (*admin.User, error) {
	u, err := admin.NewUser(cmd.Subject, cmd.Email, admin.Role(cmd.Role))
	if err != nil {
		return nil, errors.NewValidationError("invalid admin", err.Error())
	}

	existing, err := uc.adminRepo.GetBySubject(ctx, u.Subject())
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("admin already exists", existing.Role().String())
	}

	if err := uc.adminRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Infow("admin user added",
		"admin_id", u.ID(),
		"subject", u.Subject(),
		"role", u.Role(),
	)
	return u, nil
}
