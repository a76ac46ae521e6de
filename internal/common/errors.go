// Package common defines shared constants and sentinel errors used across
// the Investrack server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Credential errors. The transport layer must surface all of these as
	// the same generic authentication failure so callers cannot probe
	// which accounts exist.
	ErrBadCredentials    = errors.New("bad credentials")
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrPrincipalDisabled = errors.New("principal disabled")

	// Access-token validation errors. Distinct for logging and audit,
	// all mapped to "unauthenticated" at the boundary.
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenUnsupported = errors.New("unsupported token")
	ErrTokenEmptyClaims = errors.New("token claims missing required fields")

	// Refresh-token lifecycle errors.
	ErrTokenNotFound       = errors.New("refresh token not found")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Session errors.
	ErrNoSession = errors.New("no authenticated session")
)
