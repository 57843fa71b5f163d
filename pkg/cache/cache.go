// Package cache provides a small JSON read-through cache on Redis. It is
// deliberately forgiving: a nil client or a Redis failure turns every
// operation into a no-op so callers fall back to uncached reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"roomly/pkg/logger"
	"roomly/pkg/schedule"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get loads the value stored under key into v. Returns false on miss,
// decode failure or any Redis error.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		c.log.Warn("Cache entry corrupted, ignoring", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores v under key for the configured TTL. Failures are logged and
// swallowed.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("Cache encode failed", "key", key, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

// AvailabilityKey namespaces cached availability segments per org, room and
// query window.
func AvailabilityKey(orgID, roomID string, window schedule.Interval) string {
	return fmt.Sprintf("availability:%s:%s:%d:%d", orgID, roomID, window.Start.Unix(), window.End.Unix())
}

// SuggestionsKey namespaces cached room suggestions per org, site, desired
// capacity and query window.
func SuggestionsKey(orgID, siteID string, capacity int, window schedule.Interval) string {
	if siteID == "" {
		siteID = "-"
	}
	return fmt.Sprintf("suggestions:%s:%s:%d:%d:%d", orgID, siteID, capacity, window.Start.Unix(), window.End.Unix())
}
