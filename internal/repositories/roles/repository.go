// Package roles declares the repository contract for role records.
package roles

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for roles.
type Repository interface {
	// Create inserts a new role. A duplicate name yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, role *models.Role) (*models.Role, error)

	// GetByName returns the role with the given unique name.
	GetByName(ctx context.Context, name string) (*models.Role, error)

	// List returns all roles ordered by name.
	List(ctx context.Context) ([]*models.Role, error)
}
