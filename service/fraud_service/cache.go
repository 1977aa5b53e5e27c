package fraud_service

import (
	"context"
	"sync"
	"time"
)

// RiskCache caches one verdict per tag code, tagged with the location
// fingerprint it was computed for. A lookup with a different fingerprint
// misses, and a Set replaces whatever the tag held before, so a tag never
// carries verdicts for more than one location at a time.
type RiskCache interface {
	Get(ctx context.Context, tagCode, fingerprint string) (*Verdict, time.Time, bool)
	Set(ctx context.Context, tagCode, fingerprint string, verdict *Verdict, ttl time.Duration) error
	Invalidate(ctx context.Context, tagCode string) error
	ClearAll(ctx context.Context) error
	CleanupExpired(ctx context.Context) int
}

type memoryEntry struct {
	verdict     *Verdict
	fingerprint string
	expiresAt   time.Time
}

// MemoryRiskCache in-process TTL cache, the default backend
type MemoryRiskCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryRiskCache create in-process risk cache. When sweep is positive a
// background goroutine evicts expired entries at that interval; Get checks
// expiry on its own, so the sweep only bounds memory.
func NewMemoryRiskCache(sweep time.Duration) *MemoryRiskCache {
	c := &MemoryRiskCache{entries: make(map[string]memoryEntry)}
	if sweep > 0 {
		go func() {
			ticker := time.NewTicker(sweep)
			defer ticker.Stop()
			for range ticker.C {
				c.CleanupExpired(context.Background())
			}
		}()
	}
	return c
}

// Get returns the tag's cached verdict when it is not expired and was
// computed for the same location fingerprint
func (c *MemoryRiskCache) Get(_ context.Context, tagCode, fingerprint string) (*Verdict, time.Time, bool) {
	c.mu.RLock()
	entry, ok := c.entries[tagCode]
	c.mu.RUnlock()

	if !ok || entry.fingerprint != fingerprint || time.Now().After(entry.expiresAt) {
		return nil, time.Time{}, false
	}
	return entry.verdict, entry.expiresAt, true
}

// Set stores the tag's verdict, superseding any previous entry for the tag
// regardless of what location it was computed for
func (c *MemoryRiskCache) Set(_ context.Context, tagCode, fingerprint string, verdict *Verdict, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[tagCode] = memoryEntry{
		verdict:     verdict,
		fingerprint: fingerprint,
		expiresAt:   time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the tag's cached verdict
func (c *MemoryRiskCache) Invalidate(_ context.Context, tagCode string) error {
	c.mu.Lock()
	delete(c.entries, tagCode)
	c.mu.Unlock()
	return nil
}

// ClearAll drops every cached verdict
func (c *MemoryRiskCache) ClearAll(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// CleanupExpired evicts expired entries and returns how many were removed
func (c *MemoryRiskCache) CleanupExpired(_ context.Context) int {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}
