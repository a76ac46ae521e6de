package transactions

import (
	"context"
	"fmt"

	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (portfolio_id, asset_id, type, quantity, price_per_unit,
		                          total_amount, transaction_fee, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		t.PortfolioID, t.AssetID, t.Type, t.Quantity, t.PricePerUnit,
		t.TotalAmount, t.TransactionFee, t.TransactionDate, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, portfolio_id, asset_id, type, quantity, price_per_unit,
		       total_amount, transaction_fee, transaction_date, notes, created_at
		FROM transactions
		WHERE portfolio_id = $1
		ORDER BY transaction_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		t := &models.Transaction{}
		if err := rows.Scan(
			&t.ID, &t.PortfolioID, &t.AssetID, &t.Type, &t.Quantity, &t.PricePerUnit,
			&t.TotalAmount, &t.TransactionFee, &t.TransactionDate, &t.Notes, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
