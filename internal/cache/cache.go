// Package cache provides an optional Redis-backed cache of extracted
// previews so repeated unfurls of the same URL skip the network round trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"unfurl/internal/model"
)

// Cache stores serialized previews in Redis with a fixed TTL. All operations
// are best-effort: a Redis failure is reported as a miss, never as a request
// failure.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key derives the Redis key for a page URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "unfurl:pv:" + hex.EncodeToString(sum[:])
}

// Get returns the cached preview for url and whether it was a hit.
func (c *Cache) Get(ctx context.Context, url string) (*model.Preview, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, Key(url)).Bytes()
	if err != nil {
		return nil, false
	}

	var pv model.Preview
	if err := json.Unmarshal(raw, &pv); err != nil {
		return nil, false
	}
	return &pv, true
}

// Set stores a preview under its URL key.
func (c *Cache) Set(ctx context.Context, url string, pv *model.Preview) {
	if c == nil || c.rdb == nil || pv == nil {
		return
	}

	raw, err := json.Marshal(pv)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, Key(url), raw, c.ttl).Err()
}
