package usecases

import (
	"context"

	"github.com/konqer/konqer-api/internal/application/user/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

// AccessLister is the part of the entitlement store this use case reads.
type AccessLister interface {
	List(ctx context.Context, userID string, unlockedOnly bool) ([]*entitlement.ServiceAccess, error)
}

// ListServicesUseCase returns the services the caller can use right now.
type ListServicesUseCase struct {
	access AccessLister
}

func NewListServicesUseCase(access AccessLister) *ListServicesUseCase {
	return &ListServicesUseCase{access: access}
}

func (uc *ListServicesUseCase) Execute(ctx context.Context, userID string) ([]*dto.ServiceAccessResponse, error) {
	grants, err := uc.access.List(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	return dto.ToServiceAccessResponses(grants), nil
}
