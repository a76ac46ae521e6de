package models

import "time"

// TransactionType is the direction of a portfolio transaction.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// Transaction records a single buy or sell of an asset in a portfolio.
type Transaction struct {
	ID              string
	PortfolioID     string
	AssetID         string
	Type            TransactionType
	Quantity        float64
	PricePerUnit    float64
	TotalAmount     float64
	TransactionFee  float64
	TransactionDate time.Time
	Notes           string
	CreatedAt       time.Time
}
