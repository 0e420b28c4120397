// Package common defines shared constants and sentinel errors used across
// the server, transports and the CLI client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. Every other storage failure is wrapped and
	// treated as internal.
	ErrorNotFound      = errors.New("User not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. Their messages are shown to clients verbatim.
	ErrDuplicateIdentity   = errors.New("Email or biometric key already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrInvalidBiometricKey = errors.New("Invalid biometric key")
	ErrorUnauthorized      = errors.New("Unauthorized")
	ErrorInternal          = errors.New("Internal server error")

	// Input validation failure, see validation.Error.
	ErrorValidation = errors.New("validation error")

	// Token errors (malformed, badly signed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
