package recurrence

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// cacheEntry holds one cached expansion result.
type cacheEntry struct {
	dates      []time.Time
	expiresAt  time.Time
	accessedAt time.Time
}

// expansionCache memoizes Expand results keyed by anchor, rule and cap.
type expansionCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the expansion cache.
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for expansion caching.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

func newExpansionCache(config CacheConfig) *expansionCache {
	cache := &expansionCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

// cacheKey hashes every input that affects the expansion result.
func cacheKey(anchor time.Time, rule Rule, maxOccurrences int) string {
	hasher := sha256.New()

	hasher.Write([]byte(anchor.Format(time.RFC3339Nano)))
	hasher.Write([]byte(strconv.Itoa(maxOccurrences)))

	hasher.Write([]byte(rule.Frequency.String()))
	hasher.Write([]byte(strconv.Itoa(rule.Interval)))
	hasher.Write([]byte(strconv.Itoa(int(rule.End.Type))))
	hasher.Write([]byte(rule.End.Date.Format(time.RFC3339Nano)))
	hasher.Write([]byte(strconv.Itoa(rule.End.Count)))

	for _, wd := range rule.ByWeekday {
		hasher.Write([]byte{'w', byte(wd)})
	}
	for _, md := range rule.ByMonthDay {
		hasher.Write([]byte{'d', byte(md)})
	}
	for _, m := range rule.ByMonth {
		hasher.Write([]byte{'m', byte(m)})
	}
	for _, ex := range rule.Exceptions {
		hasher.Write([]byte(ex.Format(time.RFC3339Nano)))
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// get retrieves a cached result if it exists and hasn't expired.
func (c *expansionCache) get(anchor time.Time, rule Rule, maxOccurrences int) ([]time.Time, bool) {
	key := cacheKey(anchor, rule, maxOccurrences)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	c.mutex.Unlock()

	return entry.dates, true
}

// set stores an expansion result.
func (c *expansionCache) set(anchor time.Time, rule Rule, maxOccurrences int, dates []time.Time) {
	key := cacheKey(anchor, rule, maxOccurrences)
	now := time.Now()

	entry := &cacheEntry{
		dates:      dates,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry

	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries, then the least recently accessed ones if
// still over the limit. Callers must hold the write lock.
func (c *expansionCache) cleanup() {
	now := time.Now()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) > c.maxEntries {
		type keyAccess struct {
			key        string
			accessedAt time.Time
		}

		keyAccessList := make([]keyAccess, 0, len(c.entries))
		for key, entry := range c.entries {
			keyAccessList = append(keyAccessList, keyAccess{key: key, accessedAt: entry.accessedAt})
		}

		sort.Slice(keyAccessList, func(i, j int) bool {
			return keyAccessList[i].accessedAt.Before(keyAccessList[j].accessedAt)
		})

		entriesToRemove := len(c.entries) - c.maxEntries
		for i := 0; i < entriesToRemove && i < len(keyAccessList); i++ {
			delete(c.entries, keyAccessList[i].key)
		}
	}
}

// cleanupLoop runs periodic cleanup until close is called.
func (c *expansionCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// close stops the cleanup goroutine and clears the cache.
func (c *expansionCache) close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// stats returns cache statistics.
func (c *expansionCache) stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	now := time.Now()

	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
	}
}

// CacheStats provides information about cache occupancy.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
