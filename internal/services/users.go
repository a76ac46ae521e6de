package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// DefaultRoleName is assigned to every newly registered user.
const DefaultRoleName = "USER"

// UserService provides user management operations on top of the
// principal store.
type UserService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	bcryptCost int
}

func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, bcryptCost int) *UserService {
	return &UserService{db: db, repos: repos, bcryptCost: bcryptCost}
}

// Register creates a new enabled user with a hashed password and the
// default role. Duplicate username or email yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Enabled:      true,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		role, err := s.repos.Roles(tx).GetByName(ctx, DefaultRoleName)
		if err != nil {
			return fmt.Errorf("error loading default role: %w", err)
		}
		return s.repos.Users(tx).AssignRole(ctx, user.ID, role.ID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user.Roles = []string{DefaultRoleName}
	return user, nil
}

// Get returns the user with the given ID, roles included.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repos.Users(s.db).GetByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).List(ctx)
}
