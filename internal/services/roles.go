package services

import (
	"context"
	"database/sql"

	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// RoleService provides role management operations.
type RoleService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewRoleService(db *sql.DB, repos repomanager.RepositoryManager) *RoleService {
	return &RoleService{db: db, repos: repos}
}

// Create inserts a new role with the given unique name.
func (s *RoleService) Create(ctx context.Context, name, description string) (*models.Role, error) {
	return s.repos.Roles(s.db).Create(ctx, &models.Role{Name: name, Description: description})
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]*models.Role, error) {
	return s.repos.Roles(s.db).List(ctx)
}
