package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal tracks progress toward a savings target. CurrentAmount is set
// directly by the client; the backend never derives it from portfolio
// value.
type Goal struct {
	ID            int             `json:"id"`
	GoalName      string          `json:"goal_name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// Progress returns the display percentage toward the target, clamped to
// 100. A goal with a zero target reports 0.
func (g *Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
