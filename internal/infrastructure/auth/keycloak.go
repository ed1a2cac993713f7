package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/konqer/konqer-api/internal/shared/config"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// TokenSet is what the identity provider hands back for a code or refresh
// token.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// KeycloakClient proxies the OpenID Connect token and logout endpoints of
// one realm.
type KeycloakClient struct {
	oauth      oauth2.Config
	logoutURL  string
	httpClient *http.Client
	logger     logger.Interface
}

func NewKeycloakClient(cfg *config.AuthConfig, log logger.Interface) *KeycloakClient {
	base := cfg.RealmURL() + "/protocol/openid-connect"
	return &KeycloakClient{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/auth",
				TokenURL:  base + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid", "email", "profile"},
		},
		logoutURL:  base + "/logout",
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
		logger:     log,
	}
}

func (c *KeycloakClient) ctx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// ExchangeCode trades an authorization code for tokens.
func (c *KeycloakClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenSet, error) {
	cfg := c.oauth
	cfg.RedirectURL = redirectURI

	tok, err := cfg.Exchange(c.ctx(ctx), code)
	if err != nil {
		c.logger.Warnw("code exchange failed", "error", err)
		return nil, errors.NewTokenExchangeError("Failed to exchange authorization code")
	}
	return toTokenSet(tok), nil
}

// Refresh obtains a new access token from a refresh token.
func (c *KeycloakClient) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	src := c.oauth.TokenSource(c.ctx(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		c.logger.Warnw("token refresh failed", "error", err)
		return nil, errors.NewTokenExchangeError("Failed to refresh token")
	}
	return toTokenSet(tok), nil
}

// Logout ends the provider session bound to refreshToken.
func (c *KeycloakClient) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {c.oauth.ClientID},
		"client_secret": {c.oauth.ClientSecret},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.logoutURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("logout request failed", "error", err)
		return errors.NewTokenExchangeError("Failed to log out")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		c.logger.Warnw("logout rejected", "status", resp.StatusCode)
		return errors.NewTokenExchangeError("Failed to log out")
	}
	return nil
}

func toTokenSet(tok *oauth2.Token) *TokenSet {
	ts := &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		ts.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	return ts
}
