package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cargoline/shipping-core/internal/api/metrics"
)

// DefaultDedupTTL bounds how long a processed event key is remembered.
const DefaultDedupTTL = time.Hour

const keyPrefix = "dedup:"

// DedupChecker provides idempotency checks backed by Redis.
// Key format: dedup:<tracking_number>:<stage>:<unix_nano_timestamp>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// A non-positive ttl falls back to DefaultDedupTTL.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this event has been processed (expires after the TTL).
func (d *DedupChecker) Mark(ctx context.Context, key string) error {
	if err := d.client.Set(ctx, keyPrefix+key, "1", d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (d *DedupChecker) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

// NopDedup never reports duplicates. It is used when Redis is not configured.
type NopDedup struct{}

func (NopDedup) IsDuplicate(context.Context, string) (bool, error) { return false, nil }

func (NopDedup) Mark(context.Context, string) error { return nil }
