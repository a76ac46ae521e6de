// Package transactions declares the repository contract for transaction records.
package transactions

import (
	"context"

	"github.com/investrack/server/internal/models"
)

// Repository defines persistence operations for portfolio transactions.
type Repository interface {
	Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Transaction, error)
}
