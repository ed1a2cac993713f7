package entitlement

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// ServiceImpl is the entitlement store: the (user, service) grant table
// consulted by every generation request and written by billing and admin
// paths.
type ServiceImpl struct {
	accessRepo entitlement.Repository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewService(
	accessRepo entitlement.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *ServiceImpl {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &ServiceImpl{
		accessRepo: accessRepo,
		clock:      clock,
		logger:     logger,
	}
}

// HasAccess is true iff an unlocked grant exists. A missing grant denies.
func (s *ServiceImpl) HasAccess(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error) {
	ok, err := s.accessRepo.HasUnlocked(ctx, userID, service)
	if err != nil {
		s.logger.Errorw("failed to check service access",
			"error", err,
			"user_id", userID,
			"service", service,
		)
		return false, fmt.Errorf("failed to check service access: %w", err)
	}

	s.logger.Debugw("checked service access",
		"user_id", userID,
		"service", service,
		"allowed", ok,
	)
	return ok, nil
}

// Grant unlocks service for the user, creating the grant when absent.
// Granting an unlocked service is a no-op. It reports whether anything
// changed.
func (s *ServiceImpl) Grant(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error) {
	access, err := s.accessRepo.Get(ctx, userID, service)
	if err != nil {
		s.logger.Errorw("failed to get service access", "error", err, "user_id", userID, "service", service)
		return false, fmt.Errorf("failed to get service access: %w", err)
	}

	if access == nil {
		access, err = entitlement.NewServiceAccess(userID, service, s.clock())
		if err != nil {
			return false, errors.NewValidationError(err.Error())
		}

		err = s.accessRepo.Create(ctx, access)
		if err == nil {
			s.logger.Infow("service access granted", "user_id", userID, "service", service)
			return true, nil
		}
		if !errors.IsConflictError(err) {
			s.logger.Errorw("failed to create service access", "error", err, "user_id", userID, "service", service)
			return false, fmt.Errorf("failed to create service access: %w", err)
		}

		// Lost the insert race: unlock whatever the winner wrote.
		access, err = s.accessRepo.Get(ctx, userID, service)
		if err != nil {
			s.logger.Errorw("failed to re-read service access", "error", err, "user_id", userID, "service", service)
			return false, fmt.Errorf("failed to get service access: %w", err)
		}
		if access == nil {
			return false, errors.NewInternalError("service access vanished after conflicting insert")
		}
	}

	if !access.Unlock(s.clock()) {
		return false, nil
	}
	if err := s.accessRepo.UpdateLock(ctx, access); err != nil {
		s.logger.Errorw("failed to unlock service access", "error", err, "user_id", userID, "service", service)
		return false, fmt.Errorf("failed to unlock service access: %w", err)
	}

	s.logger.Infow("service access unlocked", "user_id", userID, "service", service)
	return true, nil
}

// GrantSet grants every service in order and returns the ones that
// changed. Callers wanting all-or-nothing run it inside a transaction.
func (s *ServiceImpl) GrantSet(ctx context.Context, userID string, services []entitlement.ServiceKey) ([]entitlement.ServiceKey, error) {
	var granted []entitlement.ServiceKey
	for _, svc := range services {
		changed, err := s.Grant(ctx, userID, svc)
		if err != nil {
			return nil, err
		}
		if changed {
			granted = append(granted, svc)
		}
	}
	return granted, nil
}

// Lock revokes access while keeping the grant row. It reports whether the
// grant was unlocked before.
func (s *ServiceImpl) Lock(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error) {
	access, err := s.accessRepo.Get(ctx, userID, service)
	if err != nil {
		s.logger.Errorw("failed to get service access", "error", err, "user_id", userID, "service", service)
		return false, fmt.Errorf("failed to get service access: %w", err)
	}
	if access == nil {
		return false, errors.NewNotFoundError(fmt.Sprintf("user has no access record for %s", service))
	}

	if !access.Lock() {
		return false, nil
	}
	if err := s.accessRepo.UpdateLock(ctx, access); err != nil {
		s.logger.Errorw("failed to lock service access", "error", err, "user_id", userID, "service", service)
		return false, fmt.Errorf("failed to lock service access: %w", err)
	}

	s.logger.Infow("service access locked", "user_id", userID, "service", service)
	return true, nil
}

// List returns the user's grants. With unlockedOnly the locked ones are
// filtered out.
func (s *ServiceImpl) List(ctx context.Context, userID string, unlockedOnly bool) ([]*entitlement.ServiceAccess, error) {
	grants, err := s.accessRepo.ListByUser(ctx, userID, unlockedOnly)
	if err != nil {
		s.logger.Errorw("failed to list service access", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list service access: %w", err)
	}
	return grants, nil
}

