package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade.
type TradeSide string

const (
	TradeBuy  TradeSide = "Buy"
	TradeSell TradeSide = "Sell"
)

// Valid reports whether s is Buy or Sell.
func (s TradeSide) Valid() bool {
	return s == TradeBuy || s == TradeSell
}

// Transaction is a single buy or sell event. Transactions are immutable
// once created; they may be deleted but never updated. AssetName is a
// label join back to the assets table: a plain string match, never an
// enforced foreign key, so the log survives asset deletion.
type Transaction struct {
	ID              int             `json:"id"`
	AssetName       string          `json:"asset_name"`
	TransactionType TradeSide       `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
