package tagmap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "tagmap:mapping"

// Cache stores the last successfully fetched mapping in Redis so a run that
// hits a service outage can reuse the previous table instead of dropping
// straight to identity mapping.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a mapping cache against the given Redis address.
func NewCache(addr, password string, db int, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Store saves a mapping as the last-known-good table.
func (c *Cache) Store(ctx context.Context, mapping map[string]string) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	if err := c.rdb.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("store mapping: %w", err)
	}
	return nil
}

// Load returns the cached mapping, or ok=false when the key is absent.
func (c *Cache) Load(ctx context.Context) (map[string]string, bool, error) {
	data, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load mapping: %w", err)
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, false, fmt.Errorf("decode cached mapping: %w", err)
	}
	return mapping, true, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error { return c.rdb.Close() }
