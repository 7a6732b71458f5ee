package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AvailabilityCache stores the advisory free-slot list per (resource, date)
// in Redis. It is strictly a UX hint: booking correctness is enforced by
// the appointments uniqueness constraint, so a stale entry can never cause
// a double booking. All methods degrade to a no-op miss when Redis is not
// configured or unreachable.
type AvailabilityCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewAvailabilityCache builds a cache around an optional Redis client.
func NewAvailabilityCache(redis *Redis, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{redis: redis, ttl: ttl}
}

func availabilityKey(resourceID int64, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", resourceID, date.Format("2006-01-02"))
}

// Get returns the cached slot list and whether it was present.
func (c *AvailabilityCache) Get(ctx context.Context, resourceID int64, date time.Time) ([]string, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, availabilityKey(resourceID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores the slot list with the configured TTL.
func (c *AvailabilityCache) Set(ctx context.Context, resourceID int64, date time.Time, slots []string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, availabilityKey(resourceID, date), raw, c.ttl).Err()
}

// Invalidate drops the cached list after a booking or cancellation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, resourceID int64, date time.Time) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, availabilityKey(resourceID, date)).Err()
}
