package market

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Mock InstrumentStore
// ---------------------------------------------------------------------------

type mockInstrumentStore struct {
	mu          sync.Mutex
	instruments []*models.Instrument
	updates     map[int]decimal.Decimal
	listErr     error
	failID      int
}

func newMockStore(prices map[int]string) *mockInstrumentStore {
	store := &mockInstrumentStore{updates: make(map[int]decimal.Decimal), failID: -1}
	for id, price := range prices {
		store.instruments = append(store.instruments, &models.Instrument{
			ID:           id,
			Symbol:       "SYM" + decimal.NewFromInt(int64(id)).String(),
			Type:         models.AssetTypeStock,
			CurrentPrice: decimal.RequireFromString(price),
		})
	}
	return store
}

func (m *mockInstrumentStore) ListInstruments() ([]*models.Instrument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	cp := make([]*models.Instrument, len(m.instruments))
	copy(cp, m.instruments)
	return cp, nil
}

func (m *mockInstrumentStore) UpdateInstrumentPriceByID(id int, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == m.failID {
		return assert.AnError
	}
	m.updates[id] = price
	return nil
}

func (m *mockInstrumentStore) Updates() map[int]decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[int]decimal.Decimal, len(m.updates))
	for id, p := range m.updates {
		cp[id] = p
	}
	return cp
}

func (m *mockInstrumentStore) UpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updates)
}

type mockPriceCache struct {
	mu      sync.Mutex
	symbols []string
}

func (c *mockPriceCache) SetInstrumentPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.symbols = append(c.symbols, symbol)
	return nil
}

// ---------------------------------------------------------------------------
// driftPrice
// ---------------------------------------------------------------------------

func TestDriftPrice_AppliesFraction(t *testing.T) {
	price := decimal.NewFromInt(100)

	assert.True(t, driftPrice(price, 0.02).Equal(decimal.NewFromInt(102)))
	assert.True(t, driftPrice(price, -0.02).Equal(decimal.NewFromInt(98)))
	assert.True(t, driftPrice(price, 0).Equal(price))
}

func TestDriftPrice_RoundsToTwoDecimals(t *testing.T) {
	price := decimal.RequireFromString("99.99")

	// 99.99 * 1.0133 = 101.319867, rounded to 101.32
	next := driftPrice(price, 0.0133)
	assert.True(t, next.Equal(decimal.RequireFromString("101.32")))
}

func TestDriftPrice_FloorsAtMinimum(t *testing.T) {
	price := decimal.RequireFromString("0.01")

	next := driftPrice(price, -0.02)
	assert.True(t, next.GreaterThanOrEqual(minPrice))
}

// ---------------------------------------------------------------------------
// tick
// ---------------------------------------------------------------------------

func TestSimulatorTick_UpdatesEveryInstrument(t *testing.T) {
	store := newMockStore(map[int]string{1: "2456.75", 2: "55.00", 3: "3520000.00"})
	sim := NewSimulator(store, nil, time.Minute)

	sim.tick(context.Background())

	updates := store.Updates()
	require.Len(t, updates, 3)

	// Bound check: one tick moves a price by at most 2%, modulo the
	// final rounding to two decimals.
	for _, in := range store.instruments {
		newPrice, ok := updates[in.ID]
		require.True(t, ok)

		old := in.CurrentPrice
		diff := newPrice.Sub(old).Abs()
		limit := old.Mul(decimal.RequireFromString("0.02")).Add(decimal.RequireFromString("0.005"))
		assert.True(t, diff.LessThanOrEqual(limit),
			"price %s drifted to %s, beyond the 2%% bound", old, newPrice)
		assert.True(t, newPrice.GreaterThanOrEqual(minPrice))
	}
}

func TestSimulatorTick_RowFailureSkipsAndContinues(t *testing.T) {
	store := newMockStore(map[int]string{1: "100.00", 2: "200.00", 3: "300.00"})
	store.failID = 2
	sim := NewSimulator(store, nil, time.Minute)

	sim.tick(context.Background())

	updates := store.Updates()
	assert.Len(t, updates, 2)
	assert.NotContains(t, updates, 2)
}

func TestSimulatorTick_ListFailureIsLoggedNotFatal(t *testing.T) {
	store := newMockStore(nil)
	store.listErr = assert.AnError
	sim := NewSimulator(store, nil, time.Minute)

	// Must not panic; the next interval tick would retry.
	sim.tick(context.Background())
	assert.Zero(t, store.UpdateCount())
}

func TestSimulatorTick_WritesThroughCache(t *testing.T) {
	store := newMockStore(map[int]string{1: "100.00", 2: "200.00"})
	cache := &mockPriceCache{}
	sim := NewSimulator(store, cache, time.Minute)

	sim.tick(context.Background())

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Len(t, cache.symbols, 2)
}

// ---------------------------------------------------------------------------
// Start / Stop lifecycle
// ---------------------------------------------------------------------------

func TestSimulator_StartTicksImmediatelyAndStops(t *testing.T) {
	store := newMockStore(map[int]string{1: "100.00"})
	sim := NewSimulator(store, nil, 10*time.Millisecond)

	sim.Start(context.Background())

	require.Eventually(t, func() bool {
		return store.UpdateCount() > 0
	}, time.Second, time.Millisecond, "expected at least one tick after Start")

	sim.Stop()

	// No tick may begin after Stop returns.
	store.mu.Lock()
	store.updates = make(map[int]decimal.Decimal)
	store.mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, store.UpdateCount())
}

func TestSimulator_StopIsIdempotent(t *testing.T) {
	store := newMockStore(map[int]string{1: "100.00"})
	sim := NewSimulator(store, nil, time.Minute)

	sim.Start(context.Background())
	sim.Stop()
	sim.Stop()
}

func TestSimulator_StopWithoutStart(t *testing.T) {
	sim := NewSimulator(newMockStore(nil), nil, time.Minute)
	sim.Stop()
}

func TestSimulator_DoubleStartIsNoOp(t *testing.T) {
	store := newMockStore(map[int]string{1: "100.00"})
	sim := NewSimulator(store, nil, time.Hour)

	sim.Start(context.Background())
	sim.Start(context.Background())
	defer sim.Stop()

	require.Eventually(t, func() bool {
		return store.UpdateCount() == 1
	}, time.Second, time.Millisecond)
	// A second Start must not arm a second loop with its own immediate
	// tick; with an hour-long interval exactly one update appears.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, store.UpdateCount())
}
