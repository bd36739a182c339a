package recurrence

import (
	"time"
)

// Config holds configuration options for an Expander.
type Config struct {
	CacheEnabled bool
	Cache        CacheConfig
}

// DefaultConfig provides sensible defaults for production use.
var DefaultConfig = Config{
	CacheEnabled: true,
	Cache:        DefaultCacheConfig,
}

// HighPerformanceConfig is optimized for high-traffic scenarios.
var HighPerformanceConfig = Config{
	CacheEnabled: true,
	Cache: CacheConfig{
		TTL:             30 * time.Minute, // Longer cache TTL
		MaxEntries:      5000,             // More cache entries
		CleanupInterval: 10 * time.Minute, // Less frequent cleanup
	},
}

// LowMemoryConfig is optimized for memory-constrained environments.
var LowMemoryConfig = Config{
	CacheEnabled: true,
	Cache: CacheConfig{
		TTL:             5 * time.Minute, // Shorter cache TTL
		MaxEntries:      100,             // Fewer cache entries
		CleanupInterval: 2 * time.Minute, // More frequent cleanup
	},
}

// DisabledCacheConfig turns off caching entirely.
var DisabledCacheConfig = Config{
	CacheEnabled: false,
	Cache:        CacheConfig{}, // Not used
}
