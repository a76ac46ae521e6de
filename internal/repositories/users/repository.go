// Package users declares the repository contract for principal records.
package users

import (
	"context"
	"time"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for users and their role
// assignments. Lookups return common.ErrorNotFound when no row matches.
type Repository interface {
	// Create inserts a new user and returns it with its generated ID.
	// A duplicate username or email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user with the given ID, roles included.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByLogin returns the user whose username or email matches login,
	// roles included.
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	// UpdateLastLogin stamps the user's last successful sign-in.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// AssignRole links an existing role to the user.
	AssignRole(ctx context.Context, userID, roleID string) error

	// List returns all users without their role sets.
	List(ctx context.Context) ([]*models.User, error)
}
