package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// productCacheTTL bounds how long storefront responses are served from cache.
const productCacheTTL = 5 * time.Minute

// ProductCache caches rendered storefront list and detail payloads. Entries
// are invalidated wholesale on any admin write.
type ProductCache struct {
	redis *RedisClient
}

// NewProductCache creates a new ProductCache.
func NewProductCache(redis *RedisClient) *ProductCache {
	return &ProductCache{redis: redis}
}

// keyList returns the cache key for a filtered, paginated product listing.
func (c *ProductCache) keyList(search, category string, page int) string {
	return fmt.Sprintf("catalog:list:%s:%s:%d", search, category, page)
}

// keyDetail returns the cache key for a product detail payload.
func (c *ProductCache) keyDetail(id int) string {
	return fmt.Sprintf("catalog:detail:%d", id)
}

// GetList retrieves a cached listing payload into dst. Returns false on miss.
func (c *ProductCache) GetList(ctx context.Context, search, category string, page int, dst interface{}) bool {
	return c.get(ctx, c.keyList(search, category, page), dst)
}

// SetList stores a listing payload.
func (c *ProductCache) SetList(ctx context.Context, search, category string, page int, value interface{}) error {
	return c.set(ctx, c.keyList(search, category, page), value)
}

// GetDetail retrieves a cached detail payload into dst. Returns false on miss.
func (c *ProductCache) GetDetail(ctx context.Context, id int, dst interface{}) bool {
	return c.get(ctx, c.keyDetail(id), dst)
}

// SetDetail stores a detail payload.
func (c *ProductCache) SetDetail(ctx context.Context, id int, value interface{}) error {
	return c.set(ctx, c.keyDetail(id), value)
}

// Invalidate drops every cached catalog payload. Called after any admin
// write so readers never see stale products.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.redis.DeleteByPattern(ctx, "catalog:*")
}

func (c *ProductCache) get(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dst) == nil
}

func (c *ProductCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload: %w", err)
	}
	return c.redis.Set(ctx, key, string(data), productCacheTTL)
}
