package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authorization-specific error types. These are the only outcomes the request
// guard produces; the transport layer maps them to client-facing statuses.
const (
	ErrorTypeMissingCredential  ErrorType = "missing_credential"
	ErrorTypeInvalidCredential  ErrorType = "invalid_credential"
	ErrorTypeIdentityNotFound   ErrorType = "identity_not_found"
	ErrorTypePermissionDenied   ErrorType = "permission_denied"
	ErrorTypeStoreUnavailable   ErrorType = "store_unavailable"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
)

// AuthError represents authentication and authorization errors with enhanced
// security context.
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged at error level.
	// Expected denials (missing token, insufficient permissions) don't need
	// error-level logging.
	ShouldLog bool
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

// NewMissingCredentialError is returned when a guarded request carries no
// parseable bearer token. Checked before any verification work.
func NewMissingCredentialError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeMissingCredential,
			Message: "access token required",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewInvalidCredentialError covers every token verification failure: bad
// signature, malformed payload, expiry. The message is deliberately uniform
// so callers cannot distinguish an expired token from a garbled one.
func NewInvalidCredentialError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredential,
			Message: "invalid token",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true, // track for tampering detection
	}
}

// NewIdentityNotFoundError is returned when a verified token's subject no
// longer resolves to a user (deleted after issuance).
func NewIdentityNotFoundError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeIdentityNotFound,
			Message: "user not found",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewPermissionDeniedError identifies the first unsatisfied permission in the
// requirement list.
func NewPermissionDeniedError(permission string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypePermissionDenied,
			Message: fmt.Sprintf("insufficient permissions. required: %s", permission),
			Code:    http.StatusForbidden,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewStoreUnavailableError is the fail-closed outcome when the identity or
// role store cannot be reached. The storage error text is never surfaced to
// the caller.
func NewStoreUnavailableError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeStoreUnavailable,
			Message: "authorization temporarily unavailable",
			Code:    http.StatusServiceUnavailable,
		},
		ShouldLog:     true, // infrastructure fault, must be visible
		SecurityEvent: false,
	}
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// It does not reveal whether the email or password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true, // track for brute force detection
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authorization error should be logged
// at error level. Keeps expected denials out of the error logs.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
