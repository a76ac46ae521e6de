package services

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// CredentialVerifier validates a username/email + password pair and
// returns the canonical username of the authenticated principal.
// Wrong password and unknown user are indistinguishable to the caller.
type CredentialVerifier interface {
	Verify(ctx context.Context, usernameOrEmail, password string) (string, error)
}

// BcryptVerifier checks credentials against bcrypt hashes stored with the
// principal records.
type BcryptVerifier struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewBcryptVerifier(db *sql.DB, repos repomanager.RepositoryManager) *BcryptVerifier {
	return &BcryptVerifier{db: db, repos: repos}
}

// dummyHash is compared against when the user does not exist, so the
// failure path costs roughly the same either way.
var dummyHash = []byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO5p6FD4aTFvjw0K1cUHbQ6B6lVHFO3qG")

// Verify returns the stored username on success. Unknown users and wrong
// passwords both come back as common.ErrBadCredentials so callers cannot
// enumerate accounts; disabled accounts return common.ErrPrincipalDisabled,
// which the transport maps to the same generic response.
func (v *BcryptVerifier) Verify(ctx context.Context, usernameOrEmail, password string) (string, error) {
	user, err := v.repos.Users(v.db).GetByLogin(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", common.ErrBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrBadCredentials
	}

	if !user.Enabled {
		return "", common.ErrPrincipalDisabled
	}

	return user.Username, nil
}
