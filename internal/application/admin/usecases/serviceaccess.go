package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/domain/audit"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/domain/user"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// AccessManager grants and locks services for a user.
type AccessManager interface {
	Grant(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error)
	Lock(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error)
}

// SetServiceAccessCommand is an admin unlock (Locked false) or lock.
type SetServiceAccessCommand struct {
	ActorID string
	UserID  string
	Service string
	Locked  bool
}

// SetServiceAccessUseCase changes one grant and writes the audit entry in
// the same transaction. No-op changes are not audited.
type SetServiceAccessUseCase struct {
	userRepo   user.Repository
	configRepo serviceconfig.Repository
	access     AccessManager
	auditRepo  audit.Repository
	txMgr      *db.TransactionManager
	logger     logger.Interface
}

func NewSetServiceAccessUseCase(
	userRepo user.Repository,
	configRepo serviceconfig.Repository,
	access AccessManager,
	auditRepo audit.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *SetServiceAccessUseCase {
	return &SetServiceAccessUseCase{
		userRepo:   userRepo,
		configRepo: configRepo,
		access:     access,
		auditRepo:  auditRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *SetServiceAccessUseCase) Execute(ctx context.Context, cmd SetServiceAccessCommand) (*dto.ServiceAccessChange, error) {
	key, err := entitlement.ParseServiceKey(cmd.Service)
	if err != nil {
		return nil, errors.NewValidationError("invalid service", err.Error())
	}

	action := audit.ActionServiceUnlock
	if cmd.Locked {
		action = audit.ActionServiceLock
	}

	var changed bool
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userRepo.GetByID(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			return errors.NewNotFoundError("user not found")
		}

		if !cmd.Locked {
			cfg, err := uc.configRepo.GetByService(txCtx, key)
			if err != nil {
				return fmt.Errorf("failed to get service config: %w", err)
			}
			if cfg == nil {
				return errors.NewNotFoundError("service not found")
			}
			changed, err = uc.access.Grant(txCtx, u.ID(), key)
		} else {
			changed, err = uc.access.Lock(txCtx, u.ID(), key)
		}
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		entry, err := audit.NewLog(cmd.ActorID, action, audit.EntityUser, u.ID(), map[string]any{
			"service": key.String(),
		})
		if err != nil {
			return err
		}
		if err := uc.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to change service access", "error", err,
				"user_id", cmd.UserID,
				"service", key,
				"action", action,
			)
		}
		return nil, err
	}

	resp := &dto.ServiceAccessChange{
		UserID:  cmd.UserID,
		Service: key.String(),
		Locked:  cmd.Locked,
		Changed: changed,
	}
	switch {
	case !changed && cmd.Locked:
		resp.Message = "Service already locked"
	case !changed:
		resp.Message = "Service already unlocked"
	case cmd.Locked:
		resp.Message = fmt.Sprintf("Service %s locked for user", key)
	default:
		resp.Message = fmt.Sprintf("Service %s unlocked for user", key)
	}

	if changed {
		uc.logger.Infow("service access changed by admin",
			"actor_id", cmd.ActorID,
			"user_id", cmd.UserID,
			"service", key,
			"action", action,
		)
	}
	return resp, nil
}
