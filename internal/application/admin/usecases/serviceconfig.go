package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/domain/audit"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type UpdateServiceConfigUseCase struct {
	configRepo serviceconfig.Repository
	auditRepo  audit.Repository
	txMgr      *db.TransactionManager
	logger     logger.Interface
}

func NewUpdateServiceConfigUseCase(
	configRepo serviceconfig.Repository,
	auditRepo audit.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateServiceConfigUseCase {
	return &UpdateServiceConfigUseCase{
		configRepo: configRepo,
		auditRepo:  auditRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *UpdateServiceConfigUseCase) Execute(ctx context.Context, actorID, service string, req dto.UpdateServiceConfigRequest) (*dto.ServiceConfigResponse, error) {
	key, err := entitlement.ParseServiceKey(service)
	if err != nil {
		return nil, errors.NewValidationError("invalid service", err.Error())
	}

	var cfg *serviceconfig.ServiceConfig
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		cfg, err = uc.configRepo.GetByService(txCtx, key)
		if err != nil {
			return fmt.Errorf("failed to get service config: %w", err)
		}
		if cfg == nil {
			return errors.NewNotFoundError("service not found")
		}

		changed, err := cfg.Apply(serviceconfig.Patch{
			Name:             req.Name,
			Description:      req.Description,
			PricingMonthly:   req.PricingMonthly,
			PricingAnnual:    req.PricingAnnual,
			RateLimitDaily:   req.RateLimitDaily,
			RateLimitMonthly: req.RateLimitMonthly,
			Enabled:          req.Enabled,
			Settings:         req.Config,
		})
		if err != nil {
			if stderrors.Is(err, serviceconfig.ErrNoFieldsToUpdate) {
				return errors.NewBadRequestError(err.Error())
			}
			return errors.NewValidationError(err.Error())
		}

		if err := uc.configRepo.Update(txCtx, cfg); err != nil {
			return fmt.Errorf("failed to update service config: %w", err)
		}

		entry, err := audit.NewLog(actorID, audit.ActionServiceConfigUpdate, audit.EntityService, key.String(), map[string]any{
			"fields": changed,
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
			uc.logger.Errorw("failed to update service config", "error", err, "service", key)
		}
		return nil, err
	}

	uc.logger.Infow("service config updated", "actor_id", actorID, "service", key)
	return dto.ToServiceConfigResponse(cfg), nil
}

// GetServiceConfigUseCase backs the public config endpoint.
type GetServiceConfigUseCase struct {
	configRepo serviceconfig.Repository
	logger     logger.Interface
}

func NewGetServiceConfigUseCase(configRepo serviceconfig.Repository, logger logger.Interface) *GetServiceConfigUseCase {
	return &GetServiceConfigUseCase{configRepo: configRepo, logger: logger}
}

func (uc *GetServiceConfigUseCase) Execute(ctx context.Context, service string) (*dto.ServiceConfigResponse, error) {
	key, err := entitlement.ParseServiceKey(service)
	if err != nil {
		return nil, errors.NewNotFoundError("service not found")
	}

	cfg, err := uc.configRepo.GetByService(ctx, key)
	if err != nil {
		uc.logger.Errorw("failed to get service config", "error", err, "service", key)
		return nil, fmt.Errorf("failed to get service config: %w", err)
	}
	if cfg == nil {
		return nil, errors.NewNotFoundError("service not found")
	}
	return dto.ToServiceConfigResponse(cfg), nil
}
