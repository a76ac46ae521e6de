// Package services contains server-side business logic. This file
// implements SessionService, which coordinates credential verification,
// access token issuance, and refresh token rotation for sign-in, refresh,
// and sign-out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/config"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/logging"
	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// Session is the transient result of a successful sign-in or refresh.
// It is returned to the caller and never stored.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
	Email        string
	Roles        []string
	ExpiresIn    int64 // access token lifetime, seconds
}

// TokenIssuer signs access tokens and reports their configured lifetime.
// auth.JWTManager is the production implementation.
type TokenIssuer interface {
	Issue(principalID string) (string, error)
	Validity() time.Duration
}

// SessionService coordinates the credential verifier, the principal and
// refresh token stores, and the token issuer. It holds no mutable state
// of its own and is safe for unbounded concurrent use; the transactional
// store is the sole serialization point.
type SessionService struct {
	db                   *sql.DB
	repos                repomanager.RepositoryManager
	verifier             CredentialVerifier
	tokens               TokenIssuer
	logger               logging.Logger
	refreshTokenValidity time.Duration
}

// NewSessionService constructs a SessionService from repositories,
// the credential verifier, the token manager, and server config.
func NewSessionService(db *sql.DB, repos repomanager.RepositoryManager, verifier CredentialVerifier, tokens TokenIssuer, logger logging.Logger, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                   db,
		repos:                repos,
		verifier:             verifier,
		tokens:               tokens,
		logger:               logger.With("module", "session"),
		refreshTokenValidity: cfg.RefreshTokenValidityDuration,
	}
}

// SignIn verifies the credentials and establishes a session: a signed
// access token plus a fresh refresh token that replaces any previous one
// for the principal. Credential failures of any cause surface as
// common.ErrBadCredentials or common.ErrPrincipalDisabled; the transport
// layer maps both to the same generic response.
func (s *SessionService) SignIn(ctx context.Context, usernameOrEmail, password string) (*Session, error) {
	identity, err := s.verifier.Verify(ctx, usernameOrEmail, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users(s.db).GetByLogin(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Verifier and store disagree; should not happen.
			return nil, common.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	session, err := s.establishSession(ctx, user, "signin")
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "signed in", "username", user.Username)
	return session, nil
}

// Refresh exchanges a stored refresh token for a new token pair, rotating
// the refresh token so the presented string is invalid immediately.
// Expired tokens are purged on first rejected use.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	repo := s.repos.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expired(time.Now()) {
		if err := repo.DeleteByToken(ctx, refreshToken); err != nil {
			return nil, err
		}
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	// A principal disabled since sign-in must not obtain fresh tokens.
	if !user.Enabled {
		if err := repo.DeleteByToken(ctx, refreshToken); err != nil {
			return nil, err
		}
		return nil, common.ErrPrincipalDisabled
	}

	session, err := s.establishSession(ctx, user, "")
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "session refreshed", "username", user.Username)
	return session, nil
}

// SignOut deletes the stored refresh token. Absence is not an error, so
// repeated sign-out is harmless.
func (s *SessionService) SignOut(ctx context.Context, refreshToken string) error {
	repo := s.repos.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error searching refresh token: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).DeleteByToken(ctx, refreshToken); err != nil {
			return err
		}
		return s.repos.AuditLogs(tx).Create(ctx, &models.AuditLog{
			UserID: token.UserID,
			Action: "signout",
		})
	})
}

// CurrentPrincipal returns the user attached to the current request's
// verified access token. Each request carries its own verification
// result in the context; common.ErrNoSession is returned when none is
// attached.
func (s *SessionService) CurrentPrincipal(ctx context.Context) (*models.User, error) {
	id, ok := PrincipalIDFromContext(ctx)
	if !ok {
		return nil, common.ErrNoSession
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}
	return user, nil
}

// RecentActivity returns the latest audit entries for the current
// request's principal, newest first.
func (s *SessionService) RecentActivity(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	id, ok := PrincipalIDFromContext(ctx)
	if !ok {
		return nil, common.ErrNoSession
	}
	return s.repos.AuditLogs(s.db).ListByUser(ctx, id, limit)
}

// establishSession issues the access token and atomically replaces the
// principal's refresh token. Rotation and the last-login stamp commit as
// one unit; concurrent establishment for the same principal leaves
// exactly one refresh token row.
func (s *SessionService) establishSession(ctx context.Context, user *models.User, auditAction string) (*Session, error) {
	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %w", err)
	}

	refreshToken := uuid.NewString()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Replace(ctx, user.ID, refreshToken, s.refreshTokenValidity); err != nil {
			return fmt.Errorf("error rotating refresh token: %w", err)
		}
		if err := s.repos.Users(tx).UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
			return fmt.Errorf("error updating last login: %w", err)
		}
		if auditAction != "" {
			return s.repos.AuditLogs(tx).Create(ctx, &models.AuditLog{
				UserID: user.ID,
				Action: auditAction,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Email:        user.Email,
		Roles:        user.Roles,
		ExpiresIn:    int64(s.tokens.Validity().Seconds()),
	}, nil
}
