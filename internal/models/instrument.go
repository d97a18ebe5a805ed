package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is a predefined tradable reference: a catalog entry with a
// simulated current price that drifts over time. Instruments are not
// linked to held assets except by naming convention.
type Instrument struct {
	ID           int             `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Type         AssetType       `json:"type"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  time.Time       `json:"last_updated"`
}
