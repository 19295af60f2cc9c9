package cache

import (
	"context"
	"fmt"
	"time"
)

// pendingDeleteTTL is how long a delete confirmation stays valid. Mirrors a
// confirm dialog: the pending selection is cleared when unused.
const pendingDeleteTTL = 5 * time.Minute

// PendingDeleteCache holds short-lived delete-confirmation tokens keyed by
// record kind and id. A token is single-use: consumed on confirmation.
type PendingDeleteCache struct {
	redis *RedisClient
}

// NewPendingDeleteCache creates a new PendingDeleteCache.
func NewPendingDeleteCache(redis *RedisClient) *PendingDeleteCache {
	return &PendingDeleteCache{redis: redis}
}

func (c *PendingDeleteCache) key(kind string, id int) string {
	return fmt.Sprintf("pending:delete:%s:%d", kind, id)
}

// Put stores the confirmation token for the given record.
func (c *PendingDeleteCache) Put(ctx context.Context, kind string, id int, token string) error {
	return c.redis.Set(ctx, c.key(kind, id), token, pendingDeleteTTL)
}

// Consume validates and clears the token for the given record. Returns true
// only if the token matched a pending selection.
func (c *PendingDeleteCache) Consume(ctx context.Context, kind string, id int, token string) bool {
	key := c.key(kind, id)
	stored, err := c.redis.Get(ctx, key)
	if err != nil || stored != token {
		return false
	}
	_ = c.redis.Delete(ctx, key)
	return true
}

// Clear drops any pending selection for the record.
func (c *PendingDeleteCache) Clear(ctx context.Context, kind string, id int) {
	_ = c.redis.Delete(ctx, c.key(kind, id))
}

// Kind helpers keep keys consistent across handlers.
const (
	KindProduct  = "product"
	KindCategory = "category"
)
