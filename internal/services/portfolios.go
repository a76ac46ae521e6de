package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/investrack/server/internal/common"
	"github.com/investrack/server/internal/dbx"
	"github.com/investrack/server/internal/models"
	"github.com/investrack/server/internal/repositories/repomanager"
)

// PortfolioService provides portfolio, holding, and transaction
// operations. Every operation is scoped to the owning user.
type PortfolioService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewPortfolioService(db *sql.DB, repos repomanager.RepositoryManager) *PortfolioService {
	return &PortfolioService{db: db, repos: repos}
}

// Create inserts a new portfolio owned by userID.
func (s *PortfolioService) Create(ctx context.Context, userID, name, description string) (*models.Portfolio, error) {
	return s.repos.Portfolios(s.db).Create(ctx, &models.Portfolio{
		UserID:      userID,
		Name:        name,
		Description: description,
	})
}

// Get returns the portfolio with the given ID if it belongs to userID.
func (s *PortfolioService) Get(ctx context.Context, userID, id string) (*models.Portfolio, error) {
	p, err := s.repos.Portfolios(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Ownership mismatch looks like absence to the caller.
	if p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

// List returns all portfolios owned by userID.
func (s *PortfolioService) List(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	return s.repos.Portfolios(s.db).ListByUser(ctx, userID)
}

// Update renames a portfolio owned by userID.
func (s *PortfolioService) Update(ctx context.Context, userID, id, name, description string) error {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	return s.repos.Portfolios(s.db).Update(ctx, p)
}

// Delete removes a portfolio owned by userID along with its holdings and
// transactions.
func (s *PortfolioService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repos.Portfolios(s.db).Delete(ctx, id)
}

// Holdings returns the current positions of a portfolio owned by userID.
func (s *PortfolioService) Holdings(ctx context.Context, userID, portfolioID string) ([]*models.Holding, error) {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	return s.repos.Holdings(s.db).ListByPortfolio(ctx, portfolioID)
}

// Transactions returns the transaction history of a portfolio owned by
// userID, most recent first.
func (s *PortfolioService) Transactions(ctx context.Context, userID, portfolioID string) ([]*models.Transaction, error) {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return nil, err
	}
	return s.repos.Transactions(s.db).ListByPortfolio(ctx, portfolioID)
}

// RecordTransaction stores a buy or sell and updates the aggregated
// holding for the portfolio/asset pair in the same transaction.
func (s *PortfolioService) RecordTransaction(ctx context.Context, userID string, t *models.Transaction) (*models.Transaction, error) {
	// Zero or negative amounts would poison the holding aggregates
	// (division by the summed quantity), so reject them here rather than
	// relying on the transport layer.
	if t.Quantity <= 0 || t.PricePerUnit <= 0 {
		return nil, fmt.Errorf("%w: quantity and price per unit must be positive", common.ErrorInvalidArgument)
	}

	if _, err := s.Get(ctx, userID, t.PortfolioID); err != nil {
		return nil, err
	}

	asset, err := s.repos.Assets(s.db).GetByID(ctx, t.AssetID)
	if err != nil {
		return nil, err
	}

	t.TotalAmount = t.Quantity * t.PricePerUnit

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Transactions(tx).Create(ctx, t)
		if err != nil {
			return err
		}
		t = created

		holding, err := s.repos.Holdings(tx).Get(ctx, t.PortfolioID, t.AssetID)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
			holding = &models.Holding{PortfolioID: t.PortfolioID, AssetID: t.AssetID}
		}

		if err := applyTransaction(holding, t, asset.CurrentPrice); err != nil {
			return err
		}

		if holding.Quantity == 0 {
			return s.repos.Holdings(tx).Delete(ctx, t.PortfolioID, t.AssetID)
		}
		return s.repos.Holdings(tx).Upsert(ctx, holding)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// applyTransaction folds a single buy or sell into the holding aggregate.
func applyTransaction(h *models.Holding, t *models.Transaction, currentPrice float64) error {
	switch t.Type {
	case models.TransactionTypeBuy:
		newQuantity := h.Quantity + t.Quantity
		h.TotalInvestment += t.TotalAmount + t.TransactionFee
		h.AveragePurchasePrice = h.TotalInvestment / newQuantity
		h.Quantity = newQuantity
	case models.TransactionTypeSell:
		if t.Quantity > h.Quantity {
			return fmt.Errorf("%w: cannot sell %v units, holding only %v", common.ErrorInvalidArgument, t.Quantity, h.Quantity)
		}
		h.TotalInvestment -= h.AveragePurchasePrice * t.Quantity
		h.Quantity -= t.Quantity
	default:
		return fmt.Errorf("%w: unknown transaction type %q", common.ErrorInvalidArgument, t.Type)
	}

	h.CurrentValue = h.Quantity * currentPrice
	h.ProfitLoss = h.CurrentValue - h.TotalInvestment
	if h.TotalInvestment != 0 {
		h.ProfitLossPercentage = h.ProfitLoss / h.TotalInvestment * 100
	} else {
		h.ProfitLossPercentage = 0
	}
	return nil
}
