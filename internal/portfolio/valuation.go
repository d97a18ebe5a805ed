// Package portfolio computes derived valuation views over the asset
// ledger. Everything here is pure: rows in, aggregates out, no side
// effects.
package portfolio

import (
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the headline portfolio view. Monetary fields are rendered
// as fixed two-decimal strings so clients never see float noise.
type Summary struct {
	TotalInvestment string `json:"totalInvestment"`
	CurrentValue    string `json:"currentValue"`
	TotalProfitLoss string `json:"totalProfitLoss"`
	ROI             string `json:"roi"`
	TotalAssets     int    `json:"totalAssets"`
	Timestamp       int64  `json:"timestamp"`
}

// DistributionEntry is one asset's share of the portfolio.
type DistributionEntry struct {
	Name       string          `json:"name"`
	Type       models.AssetType `json:"type"`
	Value      string          `json:"value"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	ProfitLoss string          `json:"profitLoss"`
}

// Performer names an asset together with its percentage gain or loss.
type Performer struct {
	Name string          `json:"name"`
	Gain decimal.Decimal `json:"gain"`
}

// RealTimeMetrics extends the summary with the transaction count and
// the best and worst performing assets.
type RealTimeMetrics struct {
	Summary
	TotalTransactions int        `json:"totalTransactions"`
	TopPerformer      *Performer `json:"topPerformer"`
	WorstPerformer    *Performer `json:"worstPerformer"`
}

// Summarize aggregates the ledger into total investment, current value,
// profit/loss and ROI. ROI is defined as zero when nothing is invested;
// that is a policy choice, not an error.
func Summarize(assets []*models.Asset) Summary {
	investment, value := totals(assets)
	pnl := value.Sub(investment)

	roi := decimal.Zero
	if investment.IsPositive() {
		roi = pnl.Div(investment).Mul(hundred)
	}

	return Summary{
		TotalInvestment: investment.StringFixed(2),
		CurrentValue:    value.StringFixed(2),
		TotalProfitLoss: pnl.StringFixed(2),
		ROI:             roi.StringFixed(2),
		TotalAssets:     len(assets),
		Timestamp:       time.Now().UnixMilli(),
	}
}

// Distribute maps each asset to its market value and unrealized P&L.
// The input ordering (most recently updated first) is preserved.
func Distribute(assets []*models.Asset) []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(assets))
	for _, a := range assets {
		value := a.MarketValue()
		entries = append(entries, DistributionEntry{
			Name:       a.AssetName,
			Type:       a.AssetType,
			Value:      value.StringFixed(2),
			Quantity:   a.Quantity,
			Price:      a.CurrentPrice,
			ProfitLoss: value.Sub(a.Investment()).StringFixed(2),
		})
	}
	return entries
}

// Metrics combines the summary with the transaction count and the best
// and worst performers by percentage gain. Assets with zero investment
// are excluded from the comparison; their gain ratio is degenerate.
// Ties keep the first asset encountered.
func Metrics(assets []*models.Asset, transactionCount int) RealTimeMetrics {
	m := RealTimeMetrics{
		Summary:           Summarize(assets),
		TotalTransactions: transactionCount,
	}

	for _, a := range assets {
		investment := a.Investment()
		if !investment.IsPositive() {
			continue
		}
		gainPct := a.MarketValue().Sub(investment).Div(investment).Mul(hundred)

		if m.TopPerformer == nil || gainPct.GreaterThan(m.TopPerformer.Gain) {
			m.TopPerformer = &Performer{Name: a.AssetName, Gain: gainPct}
		}
		if m.WorstPerformer == nil || gainPct.LessThan(m.WorstPerformer.Gain) {
			m.WorstPerformer = &Performer{Name: a.AssetName, Gain: gainPct}
		}
	}

	return m
}

func totals(assets []*models.Asset) (investment, value decimal.Decimal) {
	for _, a := range assets {
		investment = investment.Add(a.Investment())
		value = value.Add(a.MarketValue())
	}
	return investment, value
}
