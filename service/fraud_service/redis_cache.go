package fraud_service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "fraud:verdict:"

// redisEntry serialized cache value: the verdict plus the location
// fingerprint it was computed for
type redisEntry struct {
	Fingerprint string   `json:"fingerprint"`
	Verdict     *Verdict `json:"verdict"`
}

// RedisRiskCache redis-backed risk cache for multi-instance deployments.
// One key per tag code; expiry rides on native redis TTLs.
type RedisRiskCache struct {
	client *redis.Client
}

// NewRedisRiskCache create redis risk cache instance
func NewRedisRiskCache(client *redis.Client) *RedisRiskCache {
	return &RedisRiskCache{client: client}
}

func redisKey(tagCode string) string {
	return redisKeyPrefix + tagCode
}

// Get returns the tag's cached verdict when present and computed for the
// same location fingerprint; redis expires entries itself
func (c *RedisRiskCache) Get(ctx context.Context, tagCode, fingerprint string) (*Verdict, time.Time, bool) {
	key := redisKey(tagCode)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: redis risk cache read failed: %v", err)
		}
		return nil, time.Time{}, false
	}

	var entry redisEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("Warning: dropping corrupt risk cache entry %s: %v", key, err)
		c.client.Del(ctx, key)
		return nil, time.Time{}, false
	}

	if entry.Fingerprint != fingerprint {
		return nil, time.Time{}, false
	}

	expiresAt := time.Time{}
	if ttl, err := c.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	return entry.Verdict, expiresAt, true
}

// Set stores the tag's verdict with a native TTL, superseding any previous
// entry for the tag
func (c *RedisRiskCache) Set(ctx context.Context, tagCode, fingerprint string, verdict *Verdict, ttl time.Duration) error {
	data, err := json.Marshal(redisEntry{Fingerprint: fingerprint, Verdict: verdict})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(tagCode), data, ttl).Err()
}

// Invalidate drops the tag's cached verdict
func (c *RedisRiskCache) Invalidate(ctx context.Context, tagCode string) error {
	return c.client.Del(ctx, redisKey(tagCode)).Err()
}

// ClearAll drops every cached verdict
func (c *RedisRiskCache) ClearAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// CleanupExpired is a no-op: redis evicts expired keys on its own
func (c *RedisRiskCache) CleanupExpired(_ context.Context) int {
	return 0
}
