// Package search caches the category facet list in Redis. The cache is an
// optimization only: every error path falls through to the store, and
// project writes invalidate eagerly so a fresh facet appears immediately.
package search

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const facetsKey = "projects:facets"

// DefaultFacetTTL bounds staleness when an invalidation is lost.
const DefaultFacetTTL = 60 * time.Second

type FacetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewFacetCache wraps the given Redis client. A nil client yields a cache
// that always misses, so callers can wire it unconditionally.
func NewFacetCache(rdb *redis.Client, ttl time.Duration) *FacetCache {
	if ttl <= 0 {
		ttl = DefaultFacetTTL
	}
	return &FacetCache{rdb: rdb, ttl: ttl}
}

func (c *FacetCache) Get(ctx context.Context) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, facetsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var facets []string
	if err := json.Unmarshal(raw, &facets); err != nil {
		return nil, false
	}
	return facets, true
}

func (c *FacetCache) Set(ctx context.Context, facets []string) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(facets)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, facetsKey, raw, c.ttl).Err(); err != nil {
		log.Printf("facet cache set failed: %v", err)
	}
}

func (c *FacetCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, facetsKey).Err(); err != nil {
		log.Printf("facet cache invalidate failed: %v", err)
	}
}
