package market

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
)

// maxJitter is the largest percentage move the per-request snapshot may
// show. Jitter is ephemeral display noise; it is never written back.
const maxJitter = 4.0

// IndexQuote is a simulated market index reading.
type IndexQuote struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Value         string `json:"value"`
	Change        string `json:"change"`
	ChangePercent string `json:"changePercent"`
	Trend         string `json:"trend"`
}

// Mover is a top gainer or loser in the snapshot view.
type Mover struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Change string `json:"change"`
}

// Snapshot is the randomized intraday market view.
type Snapshot struct {
	Indices    []IndexQuote `json:"indices"`
	TopGainers []Mover      `json:"topGainers"`
	TopLosers  []Mover      `json:"topLosers"`
	Timestamp  string       `json:"timestamp"`
}

// Sector summarizes simulated performance for one asset class.
type Sector struct {
	Name        string  `json:"name"`
	Performance float64 `json:"performance"`
	Count       int     `json:"count"`
}

// NewsItem is a static headline with a randomized age.
type NewsItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

type baseIndex struct {
	name   string
	symbol string
	value  float64
}

var baseIndices = []baseIndex{
	{"NIFTY 50", "NSEI", 19674.25},
	{"SENSEX", "BSESN", 65953.48},
	{"BANK NIFTY", "BANKNIFTY", 44234.75},
}

// ComposeSnapshot builds the market view from the given stock
// instruments: simulated index quotes plus top gainers and losers
// derived from a per-request jitter in [-4%, +4%] applied to each
// stock. Losers are ordered most negative first.
func ComposeSnapshot(stocks []*models.Instrument, rng *rand.Rand) Snapshot {
	indices := make([]IndexQuote, 0, len(baseIndices))
	for _, idx := range baseIndices {
		change := (rng.Float64() - 0.5) * 500
		changePct := (rng.Float64() - 0.5) * 4
		trend := "up"
		sign := "+"
		if change < 0 {
			trend = "down"
			sign = "-"
		}
		pctSign := ""
		if changePct >= 0 {
			pctSign = "+"
		}
		indices = append(indices, IndexQuote{
			Name:          idx.name,
			Symbol:        idx.symbol,
			Value:         fmt.Sprintf("%.2f", idx.value+change),
			Change:        fmt.Sprintf("%s%.2f", sign, math.Abs(change)),
			ChangePercent: fmt.Sprintf("%s%.2f%%", pctSign, changePct),
			Trend:         trend,
		})
	}

	type jittered struct {
		in     *models.Instrument
		price  float64
		change float64
	}
	live := make([]jittered, 0, len(stocks))
	for _, in := range stocks {
		changePct := (rng.Float64() - 0.5) * 2 * maxJitter
		price, _ := in.CurrentPrice.Float64()
		live = append(live, jittered{
			in:     in,
			price:  price * (1 + changePct/100),
			change: changePct,
		})
	}

	sort.SliceStable(live, func(i, j int) bool {
		return live[i].change > live[j].change
	})

	gainers := make([]Mover, 0, 5)
	for _, j := range live[:min(5, len(live))] {
		gainers = append(gainers, Mover{
			Name:   shortName(j.in.Name),
			Symbol: j.in.Symbol,
			Price:  fmt.Sprintf("%.2f", j.price),
			Change: fmt.Sprintf("%+.2f%%", j.change),
		})
	}

	losers := make([]Mover, 0, 5)
	for i := len(live) - 1; i >= 0 && len(losers) < 5; i-- {
		j := live[i]
		losers = append(losers, Mover{
			Name:   shortName(j.in.Name),
			Symbol: j.in.Symbol,
			Price:  fmt.Sprintf("%.2f", j.price),
			Change: fmt.Sprintf("%+.2f%%", j.change),
		})
	}

	return Snapshot{
		Indices:    indices,
		TopGainers: gainers,
		TopLosers:  losers,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// SectorPerformance simulates per-asset-class performance. Crypto swings
// widest, mutual funds narrowest.
func SectorPerformance(counts map[models.AssetType]int, rng *rand.Rand) []Sector {
	return []Sector{
		{Name: "Stocks", Performance: round2((rng.Float64() - 0.5) * 4), Count: counts[models.AssetTypeStock]},
		{Name: "Mutual Funds", Performance: round2((rng.Float64() - 0.5) * 2), Count: counts[models.AssetTypeMutualFund]},
		{Name: "Crypto", Performance: round2((rng.Float64() - 0.5) * 8), Count: counts[models.AssetTypeCrypto]},
	}
}

// News returns the static headline feed with randomized ages.
func News(rng *rand.Rand) []NewsItem {
	return []NewsItem{
		{
			Title:    "Markets Rally on Strong Q3 Results",
			Summary:  "Nifty 50 gains as major companies report better earnings",
			Time:     hoursAgo(rng, 1, 8),
			Category: "Markets",
		},
		{
			Title:    "RBI Policy Decision Today",
			Summary:  "Central bank expected to maintain current repo rates",
			Time:     hoursAgo(rng, 2, 6),
			Category: "Policy",
		},
		{
			Title:    "Tech Stocks Outperform",
			Summary:  "IT sector leads with strong momentum in global markets",
			Time:     hoursAgo(rng, 3, 4),
			Category: "Sectors",
		},
		{
			Title:    "FII Inflows Continue",
			Summary:  "Foreign investors pump ₹3,200 crores into Indian equities",
			Time:     hoursAgo(rng, 1, 12),
			Category: "Investment",
		},
	}
}

func hoursAgo(rng *rand.Rand, base, spread int) string {
	return fmt.Sprintf("%d hours ago", rng.Intn(spread)+base)
}

func shortName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
