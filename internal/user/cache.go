package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// CacheConfig sizes the profile cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedProfileEntry wraps a profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string
	Profile  domain.Profile
	CachedAt time.Time
}

// profileCache is an in-memory LRU for profile reads with time-based expiry.
// Seed gating reads the profile on every upload, so this sits on the hot path.
type profileCache struct {
	lru    *expirable.LRU[domain.UserID, *cachedProfileEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newProfileCache(cfg CacheConfig) *profileCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &profileCache{
		lru: expirable.NewLRU[domain.UserID, *cachedProfileEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a copy of the cached profile so callers cannot mutate the entry
func (c *profileCache) Get(id domain.UserID) (*domain.Profile, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	p := entry.Profile
	return &p, true
}

// Set stores a copy of the profile
func (c *profileCache) Set(p *domain.Profile) {
	c.lru.Add(p.ID, &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  *p,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a profile from the cache
func (c *profileCache) Invalidate(id domain.UserID) {
	c.lru.Remove(id)
}

// Clear removes all entries from the cache
func (c *profileCache) Clear() {
	c.lru.Purge()
}

// GetStats returns hit and miss counters plus the current size
func (c *profileCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
