package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeTokenExpired     ErrorType = "token_expired"
	ErrorTypeTokenInvalid     ErrorType = "token_invalid"
	ErrorTypeSignatureInvalid ErrorType = "signature_invalid"
	ErrorTypeTokenExchange    ErrorType = "token_exchange_failed"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewTokenExpiredError is returned when a bearer token is past its expiry.
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewTokenInvalidError is returned for malformed tokens, unknown keys,
// wrong issuer or wrong audience.
func NewTokenInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid authentication token",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		SecurityEvent: true,
	}
}

// NewSignatureInvalidError rejects a webhook whose signature does not match.
func NewSignatureInvalidError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSignatureInvalid,
			Message: "Invalid webhook signature",
			Code:    http.StatusBadRequest,
		},
		SecurityEvent: true,
	}
}

// NewTokenExchangeError is returned when the identity provider refuses a
// code or refresh token.
func NewTokenExchangeError(message string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExchange,
			Message: message,
			Code:    http.StatusBadRequest,
		},
	}
}

// IsAuthError reports whether err carries an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// IsSignatureInvalid reports whether err is a webhook signature failure.
func IsSignatureInvalid(err error) bool {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr.Type == ErrorTypeSignatureInvalid
	}
	return false
}
