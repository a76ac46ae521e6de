package models

import "time"

// AssetType classifies a tradable instrument.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeBond   AssetType = "BOND"
	AssetTypeETF    AssetType = "ETF"
	AssetTypeCrypto AssetType = "CRYPTO"
	AssetTypeCash   AssetType = "CASH"
)

// Asset is a tradable instrument with a unique symbol.
type Asset struct {
	ID             string
	Symbol         string
	Name           string
	Type           AssetType
	Currency       string
	CurrentPrice   float64
	PriceUpdatedAt *time.Time
	Exchange       string
	Active         bool
	CreatedAt      time.Time
}
