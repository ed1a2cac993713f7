package usecases

import (
	"context"
	"fmt"

	"github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// GetHistoryUseCase lists the caller's generations, newest first.
type GetHistoryUseCase struct {
	generationRepo generation.Repository
	logger         logger.Interface
}

func NewGetHistoryUseCase(generationRepo generation.Repository, logger logger.Interface) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		generationRepo: generationRepo,
		logger:         logger,
	}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, userID string, query dto.HistoryQuery) ([]*dto.GenerationHistoryItem, error) {
	filter := generation.HistoryFilter{
		UserID: userID,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = constants.DefaultPageSize
	}
	if filter.Limit > constants.MaxPageSize {
		filter.Limit = constants.MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if query.Service != "" {
		key, err := entitlement.ParseServiceKey(query.Service)
		if err != nil {
			return nil, errors.NewValidationError("invalid service filter", err.Error())
		}
		filter.Service = key
	}

	gens, err := uc.generationRepo.ListHistory(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list generation history", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list generation history: %w", err)
	}
	return dto.ToHistoryItems(gens), nil
}
