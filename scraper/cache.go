package scraper

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// Clock supplies the current time. Injectable so expiry is deterministic in
// tests.
type Clock func() time.Time

// CacheStore is a TTL cache for finished event collections, keyed by rounded
// origin, radius and keyword.
type CacheStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry
}

type cacheEntry struct {
	records []models.Record
	stored  time.Time
}

func NewCacheStore(ttl time.Duration, now Clock) *CacheStore {
	if now == nil {
		now = time.Now
	}
	return &CacheStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// CacheKey rounds coordinates to ~100 m so nearby origins share an entry.
func CacheKey(lat, lon *float64, radiusKm float64, keyword string) string {
	latPart, lonPart := "-", "-"
	if lat != nil {
		latPart = fmt.Sprintf("%.3f", *lat)
	}
	if lon != nil {
		lonPart = fmt.Sprintf("%.3f", *lon)
	}
	return fmt.Sprintf("%s|%s|%.1f|%s", latPart, lonPart, radiusKm, strings.ToLower(strings.TrimSpace(keyword)))
}

// Get returns the cached records for key if they have not expired.
func (c *CacheStore) Get(key string) ([]models.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.stored) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.records, true
}

// Put stores records under key with the current timestamp.
func (c *CacheStore) Put(key string, records []models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{records: records, stored: c.now()}
}
