package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/shared/config"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

func newTestKeycloak(t *testing.T, handler http.HandlerFunc) *KeycloakClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewKeycloakClient(&config.AuthConfig{
		ServerURL:    server.URL,
		Realm:        "konqer",
		ClientID:     "konqer-api",
		ClientSecret: "s3cret",
	}, logger.NewNopLogger())
}

func TestKeycloakClient_ExchangeCode(t *testing.T) {
	c := newTestKeycloak(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/konqer/protocol/openid-connect/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "abc", r.PostForm.Get("code"))
		assert.Equal(t, "http://localhost:3000/callback", r.PostForm.Get("redirect_uri"))
		assert.Equal(t, "konqer-api", r.PostForm.Get("client_id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"expires_in":    300,
		})
	})

	ts, err := c.ExchangeCode(context.Background(), "abc", "http://localhost:3000/callback")
	require.NoError(t, err)
	assert.Equal(t, "at-1", ts.AccessToken)
	assert.Equal(t, "rt-1", ts.RefreshToken)
	assert.InDelta(t, 300, ts.ExpiresIn, 2)
}

func TestKeycloakClient_RefreshRejected(t *testing.T) {
	c := newTestKeycloak(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := c.Refresh(context.Background(), "stale")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeTokenExchange, appErr.Type)
}

func TestKeycloakClient_Logout(t *testing.T) {
	var gotToken string
	c := newTestKeycloak(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/konqer/protocol/openid-connect/logout", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		gotToken = r.PostForm.Get("refresh_token")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Logout(context.Background(), "rt-1"))
	assert.Equal(t, "rt-1", gotToken)
}
