package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/konqer/konqer-api/internal/shared/errors"
)

// Identity is the verified claim set of a bearer token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier validates identity provider access tokens against the realm's
// JWKS. Keys are refreshed in the background by keyfunc.
type Verifier struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewVerifier fetches the JWKS at jwksURL. audience may be empty, in which
// case the aud claim is not checked.
func NewVerifier(issuer, audience, jwksURL string) (*Verifier, error) {
	if jwksURL == "" {
		return nil, fmt.Errorf("jwks url is required")
	}
	k, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load jwks: %w", err)
	}
	return newVerifier(issuer, audience, k.Keyfunc), nil
}

func newVerifier(issuer, audience string, kf jwt.Keyfunc) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithLeeway(30 * time.Second),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{keyfunc: kf, parser: jwt.NewParser(opts...)}
}

// Verify parses and validates tokenString. Expired tokens yield a
// token_expired AuthError, every other failure token_invalid.
func (v *Verifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.NewTokenInvalidError("missing token")
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyfunc)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewTokenExpiredError()
		}
		return nil, errors.NewTokenInvalidError(err.Error())
	}
	if !token.Valid {
		return nil, errors.NewTokenInvalidError("token is not valid")
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return nil, errors.NewTokenInvalidError("missing sub claim")
	}

	email := claimString(claims, "email")
	if email == "" {
		return nil, errors.NewTokenInvalidError("missing email claim")
	}

	name := claimString(claims, "name")
	if name == "" {
		name = claimString(claims, "preferred_username")
	}

	return &Identity{Subject: sub, Email: email, Name: name}, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
