// Package holdings declares the repository contract for holding records.
package holdings

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for the aggregated per-asset
// positions of a portfolio.
type Repository interface {
	// Upsert inserts the holding or, when a row for the same
	// portfolio/asset pair exists, replaces its aggregate figures.
	Upsert(ctx context.Context, h *models.Holding) error

	// Get returns the holding for the given portfolio/asset pair.
	Get(ctx context.Context, portfolioID, assetID string) (*models.Holding, error)

	// ListByPortfolio returns all holdings of a portfolio.
	ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Holding, error)

	// Delete removes the holding for the given portfolio/asset pair.
	Delete(ctx context.Context, portfolioID, assetID string) error
}
