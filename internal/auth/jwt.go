// Package auth implements issuing and verification of the signed access
// tokens used by the session layer. Tokens are HS256 JWTs carrying the
// principal ID as subject; validity is decided entirely by signature and
// timestamp checks, never by a lookup.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/investrack/server/internal/common"
)

// JWTManager signs and verifies access tokens with a single symmetric key
// derived from the configured secret at process start. It is immutable
// after construction and safe for concurrent use.
type JWTManager struct {
	key      []byte
	validity time.Duration
}

// NewJWTManager builds a manager from the configured secret and access
// token lifetime. The config layer enforces the minimum secret strength
// before this is called.
func NewJWTManager(secret string, validity time.Duration) *JWTManager {
	return &JWTManager{key: []byte(secret), validity: validity}
}

// Claims is the claim set baked into access tokens. Only registered
// claims are used; the subject holds the principal ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed token for the given principal ID with
// issued-at = now and expiry = now + configured lifetime.
func (m *JWTManager) Issue(principalID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	})

	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validity returns the configured access token lifetime.
func (m *JWTManager) Validity() time.Duration {
	return m.validity
}

// Validate verifies the signature and expiry of a token and returns the
// principal ID it asserts. Failure modes are distinguished for logging
// and audit:
//
//   - common.ErrTokenMalformed: structurally invalid token
//   - common.ErrTokenExpired: past expiry, no grace period
//   - common.ErrInvalidSignature: key mismatch or tampering
//   - common.ErrTokenUnsupported: wrong signing algorithm or type
//   - common.ErrTokenEmptyClaims: missing required claims
//
// Callers must treat all of these as "unauthenticated".
func (m *JWTManager) Validate(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenUnsupported
		}
		return m.key, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenUnsupported):
			return "", common.ErrTokenUnsupported
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", common.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrInvalidSignature
		default:
			return "", common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return "", common.ErrInvalidSignature
	}

	if claims.Subject == "" {
		return "", common.ErrTokenEmptyClaims
	}

	return claims.Subject, nil
}
