package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
)

const keyTickers = "market:tickers"

// TickerCache caches the public market listing in Redis. A nil *TickerCache
// is valid and behaves as a permanent miss, so deployments without Redis
// just skip caching.
type TickerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTickerCache returns a new TickerCache.
func NewTickerCache(rdb *redis.Client, ttl time.Duration) *TickerCache {
	return &TickerCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached listing or nil on miss.
func (c *TickerCache) Get(ctx context.Context) ([]models.TickerSummary, error) {
	if c == nil {
		return nil, nil
	}
	b, err := c.rdb.Get(ctx, keyTickers).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []models.TickerSummary
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Set stores the listing.
func (c *TickerCache) Set(ctx context.Context, list []models.TickerSummary) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTickers, b, c.ttl).Err()
}

// Invalidate drops the cached listing (called after a stock upsert).
func (c *TickerCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, keyTickers).Err()
}
