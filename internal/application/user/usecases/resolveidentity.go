package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// ResolveIdentityCommand is a claim set the identity provider already
// verified.
type ResolveIdentityCommand struct {
	Subject string
	Email   string
	Name    string
}

// ResolveIdentityUseCase maps a verified identity to the local user,
// creating the user on first sight.
type ResolveIdentityUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewResolveIdentityUseCase(userRepo user.Repository, logger logger.Interface) *ResolveIdentityUseCase {
	return &ResolveIdentityUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ResolveIdentityUseCase) Execute(ctx context.Context, cmd ResolveIdentityCommand) (*user.User, error) {
	subject := strings.TrimSpace(cmd.Subject)
	if subject == "" {
		return nil, errors.NewUnauthorizedError("identity subject is missing")
	}

	existing, err := uc.userRepo.GetBySubject(ctx, subject)
	if err != nil {
		uc.logger.Errorw("failed to get user by subject", "error", err, "subject", subject)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	newUser, err := user.NewUser(subject, cmd.Email, cmd.Name)
	if err != nil {
		return nil, errors.NewUnauthorizedError("identity claims are incomplete", err.Error())
	}

	err = uc.userRepo.Create(ctx, newUser)
	if err == nil {
		uc.logger.Infow("user created on first login", "user_id", newUser.ID(), "subject", subject)
		return newUser, nil
	}
	if !errors.IsConflictError(err) {
		uc.logger.Errorw("failed to create user", "error", err, "subject", subject)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// A concurrent first login won the insert.
	existing, err = uc.userRepo.GetBySubject(ctx, subject)
	if err != nil {
		uc.logger.Errorw("failed to re-read user after conflict", "error", err, "subject", subject)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		// The conflict was on email: another subject owns this address.
		uc.logger.Warnw("email already bound to another identity", "subject", subject, "email", newUser.Email())
		return nil, errors.NewConflictError("email is already registered to another account")
	}
	return existing, nil
}
