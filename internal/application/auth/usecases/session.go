package usecases

import (
	"context"

	"github.com/konqer/konqer-api/internal/application/auth/dto"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// IdentityProvider is the OpenID token endpoint of the identity provider.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*auth.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenSet, error)
	Logout(ctx context.Context, refreshToken string) error
}

// ExchangeTokenUseCase trades an authorization code for tokens. The local
// user row is created on the first authenticated request, not here.
type ExchangeTokenUseCase struct {
	provider IdentityProvider
	logger   logger.Interface
}

func NewExchangeTokenUseCase(provider IdentityProvider, logger logger.Interface) *ExchangeTokenUseCase {
	return &ExchangeTokenUseCase{provider: provider, logger: logger}
}

func (uc *ExchangeTokenUseCase) Execute(ctx context.Context, req dto.ExchangeTokenRequest) (*auth.TokenSet, error) {
	tokens, err := uc.provider.ExchangeCode(ctx, req.Code, req.RedirectURI)
	if err != nil {
		return nil, err
	}
	uc.logger.Debugw("authorization code exchanged", "redirect_uri", req.RedirectURI)
	return tokens, nil
}

type RefreshTokenUseCase struct {
	provider IdentityProvider
	logger   logger.Interface
}

func NewRefreshTokenUseCase(provider IdentityProvider, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{provider: provider, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, req dto.RefreshTokenRequest) (*auth.TokenSet, error) {
	return uc.provider.Refresh(ctx, req.RefreshToken)
}

type LogoutUseCase struct {
	provider IdentityProvider
	logger   logger.Interface
}

func NewLogoutUseCase(provider IdentityProvider, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{provider: provider, logger: logger}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, req dto.LogoutRequest) error {
	if err := uc.provider.Logout(ctx, req.RefreshToken); err != nil {
		return err
	}
	uc.logger.Debugw("provider session ended")
	return nil
}
