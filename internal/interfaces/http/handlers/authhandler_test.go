package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/application/auth/dto"
	"github.com/konqer/konqer-api/internal/infrastructure/auth"
	"github.com/konqer/konqer-api/internal/interfaces/http/handlers/testutil"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockExchangeTokenUC struct {
	result *auth.TokenSet
	err    error
	got    dto.ExchangeTokenRequest
}

func (m *mockExchangeTokenUC) Execute(_ context.Context, req dto.ExchangeTokenRequest) (*auth.TokenSet, error) {
	m.got = req
	return m.result, m.err
}

type mockRefreshTokenUC struct {
	result *auth.TokenSet
	err    error
}

func (m *mockRefreshTokenUC) Execute(_ context.Context, _ dto.RefreshTokenRequest) (*auth.TokenSet, error) {
	return m.result, m.err
}

type mockLogoutUC struct {
	err    error
	called bool
}

func (m *mockLogoutUC) Execute(_ context.Context, _ dto.LogoutRequest) error {
	m.called = true
	return m.err
}

func newTestAuthHandler(ex *mockExchangeTokenUC, rf *mockRefreshTokenUC, lo *mockLogoutUC) *AuthHandler {
	return NewAuthHandler(ex, rf, lo, logger.NewNopLogger())
}

// =====================================================================
// Tests
// =====================================================================

func TestAuthHandler_ExchangeToken(t *testing.T) {
	ex := &mockExchangeTokenUC{result: &auth.TokenSet{AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", ExpiresIn: 300}}
	h := newTestAuthHandler(ex, &mockRefreshTokenUC{}, &mockLogoutUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/exchange-token", map[string]string{
		"code":         "abc",
		"redirect_uri": "https://app.example.com/callback",
	})
	h.ExchangeToken(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var tokens auth.TokenSet
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	assert.Equal(t, "at", tokens.AccessToken)
	assert.Equal(t, int64(300), tokens.ExpiresIn)
	assert.Equal(t, "abc", ex.got.Code)
}

func TestAuthHandler_ExchangeToken_Validation(t *testing.T) {
	ex := &mockExchangeTokenUC{}
	h := newTestAuthHandler(ex, &mockRefreshTokenUC{}, &mockLogoutUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/exchange-token", map[string]string{
		"code":         "abc",
		"redirect_uri": "not a url",
	})
	h.ExchangeToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
	assert.Contains(t, resp.Error.Details, "redirect_uri")
	assert.Empty(t, ex.got.Code)
}

func TestAuthHandler_ExchangeToken_ProviderRejects(t *testing.T) {
	ex := &mockExchangeTokenUC{err: errors.NewTokenExchangeError("Authorization code is invalid or expired")}
	h := newTestAuthHandler(ex, &mockRefreshTokenUC{}, &mockLogoutUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/exchange-token", map[string]string{
		"code":         "stale",
		"redirect_uri": "https://app.example.com/callback",
	})
	h.ExchangeToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, string(errors.ErrorTypeTokenExchange), resp.Error.Type)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	h := newTestAuthHandler(&mockExchangeTokenUC{},
		&mockRefreshTokenUC{result: &auth.TokenSet{AccessToken: "new"}}, &mockLogoutUC{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh-token", map[string]string{"refresh_token": "rt"})
	h.RefreshToken(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/auth/refresh-token", map[string]string{})
	h.RefreshToken(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	lo := &mockLogoutUC{}
	h := newTestAuthHandler(&mockExchangeTokenUC{}, &mockRefreshTokenUC{}, lo)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", map[string]string{"refresh_token": "rt"})
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, lo.called)
}
