package market

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockList(n int) []*models.Instrument {
	stocks := make([]*models.Instrument, 0, n)
	for i := 0; i < n; i++ {
		stocks = append(stocks, &models.Instrument{
			ID:           i + 1,
			Symbol:       fmt.Sprintf("STK%d", i+1),
			Name:         fmt.Sprintf("Stock%d Industries Ltd.", i+1),
			Type:         models.AssetTypeStock,
			CurrentPrice: decimal.NewFromInt(int64(100 * (i + 1))),
		})
	}
	return stocks
}

func parsePercent(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimPrefix(s, "+"), "%"), 64)
	require.NoError(t, err)
	return v
}

func TestComposeSnapshot_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	snap := ComposeSnapshot(stockList(8), rng)

	assert.Len(t, snap.Indices, 3)
	assert.Len(t, snap.TopGainers, 5)
	assert.Len(t, snap.TopLosers, 5)
	assert.NotEmpty(t, snap.Timestamp)

	names := make([]string, 0, 3)
	for _, idx := range snap.Indices {
		names = append(names, idx.Name)
		assert.Contains(t, []string{"up", "down"}, idx.Trend)
	}
	assert.Equal(t, []string{"NIFTY 50", "SENSEX", "BANK NIFTY"}, names)
}

func TestComposeSnapshot_GainersDescendLosersAscend(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	snap := ComposeSnapshot(stockList(12), rng)

	for i := 1; i < len(snap.TopGainers); i++ {
		prev := parsePercent(t, snap.TopGainers[i-1].Change)
		cur := parsePercent(t, snap.TopGainers[i].Change)
		assert.GreaterOrEqual(t, prev, cur, "gainers should be ordered best first")
	}

	// Losers are most negative first
	for i := 1; i < len(snap.TopLosers); i++ {
		prev := parsePercent(t, snap.TopLosers[i-1].Change)
		cur := parsePercent(t, snap.TopLosers[i].Change)
		assert.LessOrEqual(t, prev, cur, "losers should be ordered worst first")
	}
}

func TestComposeSnapshot_JitterStaysWithinBounds(t *testing.T) {
	stocks := stockList(10)
	rng := rand.New(rand.NewSource(7))

	snap := ComposeSnapshot(stocks, rng)

	for _, mover := range append(snap.TopGainers, snap.TopLosers...) {
		change := parsePercent(t, mover.Change)
		assert.LessOrEqual(t, change, maxJitter)
		assert.GreaterOrEqual(t, change, -maxJitter)
	}
}

func TestComposeSnapshot_FewerThanFiveStocks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	snap := ComposeSnapshot(stockList(3), rng)

	assert.Len(t, snap.TopGainers, 3)
	assert.Len(t, snap.TopLosers, 3)
}

func TestComposeSnapshot_NoStocks(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	snap := ComposeSnapshot(nil, rng)

	assert.Empty(t, snap.TopGainers)
	assert.Empty(t, snap.TopLosers)
	assert.Len(t, snap.Indices, 3)
}

func TestComposeSnapshot_MoverUsesShortName(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	snap := ComposeSnapshot(stockList(5), rng)

	require.NotEmpty(t, snap.TopGainers)
	// "Stock1 Industries Ltd." shortens to its first word
	assert.NotContains(t, snap.TopGainers[0].Name, " ")
}

func TestSectorPerformance(t *testing.T) {
	counts := map[models.AssetType]int{
		models.AssetTypeStock:      15,
		models.AssetTypeMutualFund: 4,
		models.AssetTypeCrypto:     5,
	}
	rng := rand.New(rand.NewSource(11))

	sectors := SectorPerformance(counts, rng)

	require.Len(t, sectors, 3)
	assert.Equal(t, "Stocks", sectors[0].Name)
	assert.Equal(t, 15, sectors[0].Count)
	assert.InDelta(t, 0, sectors[0].Performance, 2.0)
	assert.Equal(t, "Mutual Funds", sectors[1].Name)
	assert.Equal(t, 4, sectors[1].Count)
	assert.InDelta(t, 0, sectors[1].Performance, 1.0)
	assert.Equal(t, "Crypto", sectors[2].Name)
	assert.Equal(t, 5, sectors[2].Count)
	assert.InDelta(t, 0, sectors[2].Performance, 4.0)
}

func TestNews(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	news := News(rng)

	require.Len(t, news, 4)
	for _, item := range news {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Category)
		assert.Contains(t, item.Time, "hours ago")
	}
}
