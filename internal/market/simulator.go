// Package market simulates market movement over the predefined
// instrument catalog: a periodic persisted price drift and an ephemeral
// per-request snapshot jitter. The two run on different timescales and
// never share state.
package market

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// maxDrift is the largest fractional price change one tick may apply.
const maxDrift = 0.02

var minPrice = decimal.NewFromFloat(0.01)

var tickCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portfolio_simulator_ticks_total",
	Help: "Number of completed price drift ticks.",
})

// InstrumentStore defines the catalog operations the simulator needs
type InstrumentStore interface {
	ListInstruments() ([]*models.Instrument, error)
	UpdateInstrumentPriceByID(id int, price decimal.Decimal) error
}

// PriceCache mirrors freshly drifted prices into a cache. Implementations
// are best-effort; failures are logged, never fatal.
type PriceCache interface {
	SetInstrumentPrice(ctx context.Context, symbol string, price decimal.Decimal) error
}

// Simulator periodically perturbs every catalog price by a uniform
// fraction in [-2%, +2%]. It is an explicit lifecycle service: Start
// arms the ticker, Stop is idempotent and returns only once the loop
// has exited, so no tick begins after Stop returns.
type Simulator struct {
	store    InstrumentStore
	cache    PriceCache
	interval time.Duration
	rng      *rand.Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulator creates a drift simulator. cache may be nil.
func NewSimulator(store InstrumentStore, cache PriceCache, interval time.Duration) *Simulator {
	return &Simulator{
		store:    store,
		cache:    cache,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start runs one immediate tick and then ticks on the configured
// interval until the context is cancelled or Stop is called. Calling
// Start on a running simulator is a no-op.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	log.Printf("Starting price drift simulator (interval: %s)", s.interval)

	go func(done chan struct{}) {
		defer close(done)

		s.tick(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Price drift simulator shutting down...")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}(s.done)
}

// Stop cancels the tick loop and waits for it to exit. Safe to call
// more than once and on a simulator that was never started.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// tick drifts every catalog price once. Per-row failures are logged and
// skipped; a failed tick never stops the ticker.
func (s *Simulator) tick(ctx context.Context) {
	instruments, err := s.store.ListInstruments()
	if err != nil {
		log.Printf("Error listing instruments for price tick: %v", err)
		return
	}

	updated := 0
	for _, in := range instruments {
		fraction := (s.rng.Float64() - 0.5) * 2 * maxDrift
		newPrice := driftPrice(in.CurrentPrice, fraction)

		if err := s.store.UpdateInstrumentPriceByID(in.ID, newPrice); err != nil {
			log.Printf("Error updating price for %s: %v", in.Symbol, err)
			continue
		}
		updated++

		if s.cache != nil {
			if err := s.cache.SetInstrumentPrice(ctx, in.Symbol, newPrice); err != nil {
				log.Printf("Error caching price for %s: %v", in.Symbol, err)
			}
		}
	}

	tickCounter.Inc()
	log.Printf("Updated prices for %d of %d instruments", updated, len(instruments))
}

// driftPrice applies a fractional change multiplicatively, rounds to
// two decimals and floors the result at 0.01.
func driftPrice(price decimal.Decimal, fraction float64) decimal.Decimal {
	next := price.Mul(decimal.NewFromFloat(1 + fraction)).Round(2)
	if next.LessThan(minPrice) {
		return minPrice
	}
	return next
}
