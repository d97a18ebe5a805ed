package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a holding. The set is closed; there are no
// behavioral differences between types.
type AssetType string

const (
	AssetTypeStock      AssetType = "Stock"
	AssetTypeMutualFund AssetType = "Mutual Fund"
	AssetTypeCrypto     AssetType = "Crypto"
)

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeMutualFund, AssetTypeCrypto:
		return true
	}
	return false
}

// Asset represents a currently-held position: a named instrument with a
// quantity, the price it was bought at and the price it is marked at now.
// Quantity stays above zero for as long as the row exists; a trade that
// takes it to zero or below removes the asset entirely.
type Asset struct {
	ID           int             `json:"id"`
	AssetName    string          `json:"asset_name"`
	AssetType    AssetType       `json:"asset_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Investment returns quantity times buy price.
func (a *Asset) Investment() decimal.Decimal {
	return a.Quantity.Mul(a.BuyPrice)
}

// MarketValue returns quantity times current price.
func (a *Asset) MarketValue() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}
