package handlers

import (
	"context"

	"github.com/konqer/konqer-api/internal/application/auth/dto"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
)

// Use case interfaces for AuthHandler

type exchangeTokenUseCase interface {
	Execute(ctx context.Context, req dto.ExchangeTokenRequest) (*auth.TokenSet, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, req dto.RefreshTokenRequest) (*auth.TokenSet, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, req dto.LogoutRequest) error
}
