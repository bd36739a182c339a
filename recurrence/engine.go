package recurrence

import "time"

// Expander wraps Expand with an optional result cache. Expansion itself is
// pure, so caching never changes observable results; it only saves repeated
// stepping work for hot rules (a calendar view re-rendering the same series).
type Expander struct {
	cache  *expansionCache
	config Config
}

// NewExpander creates an Expander with the default configuration.
func NewExpander() *Expander {
	return NewExpanderWithConfig(DefaultConfig)
}

// NewExpanderWithConfig creates an Expander with custom configuration.
func NewExpanderWithConfig(config Config) *Expander {
	var cache *expansionCache
	if config.CacheEnabled {
		cache = newExpansionCache(config.Cache)
	}

	return &Expander{
		cache:  cache,
		config: config,
	}
}

// Expand behaves exactly like the package-level Expand function, consulting
// the cache first when one is configured.
func (e *Expander) Expand(anchor time.Time, rule Rule, maxOccurrences int) ([]time.Time, error) {
	if e.cache == nil {
		return Expand(anchor, rule, maxOccurrences)
	}

	if dates, ok := e.cache.get(anchor, rule, maxOccurrences); ok {
		return dates, nil
	}

	dates, err := Expand(anchor, rule, maxOccurrences)
	if err != nil {
		return nil, err
	}

	e.cache.set(anchor, rule, maxOccurrences, dates)
	return dates, nil
}

// CacheStats reports the state of the expander's cache. The zero value is
// returned when caching is disabled.
func (e *Expander) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{}
	}
	return e.cache.stats()
}

// Close releases the cache's background resources. Safe to call on an
// expander without a cache.
func (e *Expander) Close() {
	if e.cache != nil {
		e.cache.close()
	}
}
