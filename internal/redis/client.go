package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// priceTTL bounds how stale a cached reference price may get. Slightly
// more than two drift intervals so a missed tick does not empty the
// cache.
const priceTTL = 75 * time.Second

// Client wraps the Redis client with reference-price cache operations
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client
func New(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SetInstrumentPrice caches an instrument's latest simulated price. The
// drift simulator writes through here on every tick.
func (c *Client) SetInstrumentPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	key := fmt.Sprintf("instrument:%s:price", symbol)
	return c.rdb.Set(ctx, key, price.String(), priceTTL).Err()
}

// GetInstrumentPrice retrieves a cached instrument price. A cache miss
// returns redis.Nil.
func (c *Client) GetInstrumentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := fmt.Sprintf("instrument:%s:price", symbol)
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return decimal.Zero, err
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse cached price for %s: %w", symbol, err)
	}
	return price, nil
}

// InvalidateInstrumentPrice drops a cached price, used after a manual
// price update so readers never see the pre-update value.
func (c *Client) InvalidateInstrumentPrice(ctx context.Context, symbol string) error {
	key := fmt.Sprintf("instrument:%s:price", symbol)
	return c.rdb.Del(ctx, key).Err()
}
