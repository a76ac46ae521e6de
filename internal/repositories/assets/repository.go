// Package assets declares the repository contract for asset records.
package assets

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for tradable assets.
type Repository interface {
	Create(ctx context.Context, a *models.Asset) (*models.Asset, error)
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
	UpdatePrice(ctx context.Context, id string, price float64) error
}
