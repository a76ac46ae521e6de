package models

import "time"

// Holding is the aggregated position of one asset inside a portfolio.
// Quantity and cost figures are recomputed from transactions.
type Holding struct {
	ID                   string
	PortfolioID          string
	AssetID              string
	Quantity             float64
	AveragePurchasePrice float64
	TotalInvestment      float64
	CurrentValue         float64
	ProfitLoss           float64
	ProfitLossPercentage float64
	UpdatedAt            time.Time
}
