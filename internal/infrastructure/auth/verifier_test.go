package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/shared/errors"
)

const (
	testIssuer   = "http://keycloak.test/realms/konqer"
	testAudience = "konqer-api"
	testKid      = "test-key"
)

func newTestVerifier(t *testing.T) (*Verifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKid,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(server.Close)

	v, err := NewVerifier(testIssuer, testAudience, server.URL)
	require.NoError(t, err)
	return v, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":                testIssuer,
		"aud":                testAudience,
		"sub":                "kc-subject-1",
		"email":              "ada@example.com",
		"preferred_username": "ada",
		"exp":                now.Add(10 * time.Minute).Unix(),
		"iat":                now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKid
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier_Verify(t *testing.T) {
	v, key := newTestVerifier(t)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		id, err := v.Verify(ctx, signToken(t, key, nil))
		require.NoError(t, err)
		assert.Equal(t, "kc-subject-1", id.Subject)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, "ada", id.Name, "falls back to preferred_username")
	})

	t.Run("name claim wins", func(t *testing.T) {
		id, err := v.Verify(ctx, signToken(t, key, func(c jwt.MapClaims) { c["name"] = "Ada Lovelace" }))
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", id.Name)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, func(c jwt.MapClaims) {
			c["exp"] = time.Now().Add(-time.Hour).Unix()
		}))
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeTokenExpired, appErr.Type)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, func(c jwt.MapClaims) { c["aud"] = "someone-else" }))
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeTokenInvalid, appErr.Type)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, func(c jwt.MapClaims) { c["iss"] = "http://evil.test" }))
		assert.True(t, errors.IsAuthError(err))
	})

	t.Run("unknown signing key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(ctx, signToken(t, other, nil))
		assert.True(t, errors.IsAuthError(err))
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := v.Verify(ctx, signToken(t, key, func(c jwt.MapClaims) { delete(c, "email") }))
		assert.True(t, errors.IsAuthError(err))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := v.Verify(ctx, "not-a-jwt")
		assert.True(t, errors.IsAuthError(err))
		_, err = v.Verify(ctx, "  ")
		assert.True(t, errors.IsAuthError(err))
	})
}
