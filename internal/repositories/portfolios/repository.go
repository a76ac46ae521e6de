// Package portfolios declares the repository contract for portfolio records.
package portfolios

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for portfolios.
type Repository interface {
	Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)
	GetByID(ctx context.Context, id string) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error)
	Update(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, id string) error
}
