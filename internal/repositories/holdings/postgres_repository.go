package holdings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, h *models.Holding) error {
	query := `
		INSERT INTO holdings (portfolio_id, asset_id, quantity, average_purchase_price,
		                      total_investment, current_value, profit_loss, profit_loss_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (portfolio_id, asset_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			average_purchase_price = EXCLUDED.average_purchase_price,
			total_investment = EXCLUDED.total_investment,
			current_value = EXCLUDED.current_value,
			profit_loss = EXCLUDED.profit_loss,
			profit_loss_percentage = EXCLUDED.profit_loss_percentage,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		h.PortfolioID, h.AssetID, h.Quantity, h.AveragePurchasePrice,
		h.TotalInvestment, h.CurrentValue, h.ProfitLoss, h.ProfitLossPercentage,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, portfolioID, assetID string) (*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, asset_id, quantity, average_purchase_price,
		       total_investment, current_value, profit_loss, profit_loss_percentage, updated_at
		FROM holdings
		WHERE portfolio_id = $1 AND asset_id = $2
	`
	h := &models.Holding{}
	err := r.db.QueryRowContext(ctx, query, portfolioID, assetID).Scan(
		&h.ID, &h.PortfolioID, &h.AssetID, &h.Quantity, &h.AveragePurchasePrice,
		&h.TotalInvestment, &h.CurrentValue, &h.ProfitLoss, &h.ProfitLossPercentage, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, asset_id, quantity, average_purchase_price,
		       total_investment, current_value, profit_loss, profit_loss_percentage, updated_at
		FROM holdings
		WHERE portfolio_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Holding
	for rows.Next() {
		h := &models.Holding{}
		if err := rows.Scan(
			&h.ID, &h.PortfolioID, &h.AssetID, &h.Quantity, &h.AveragePurchasePrice,
			&h.TotalInvestment, &h.CurrentValue, &h.ProfitLoss, &h.ProfitLossPercentage, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, portfolioID, assetID string) error {
	query := `
		DELETE FROM holdings
		WHERE portfolio_id = $1 AND asset_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, portfolioID, assetID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
