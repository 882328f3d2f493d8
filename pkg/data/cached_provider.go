package data

import (
	"sync"

	"github.com/quantbench/stock-screener/pkg/types"
)

// MemoryCache implements SeriesCache using in-memory storage.
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string][]types.OHLCV),
	}
}

// Get retrieves data from cache if available
func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	// Return a copy so callers cannot mutate the cached series.
	result := make([]types.OHLCV, len(data))
	copy(result, data)
	return result, true
}

// Set stores data in cache
func (c *MemoryCache) Set(key string, data []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.OHLCV, len(data))
	copy(cached, data)
	c.cache[key] = cached
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string][]types.OHLCV)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another SeriesProvider so each file is parsed at
// most once per run even when several consumers ask for it.
type CachedProvider struct {
	provider SeriesProvider
	cache    SeriesCache
}

// NewCachedProvider creates a new cached series provider
func NewCachedProvider(provider SeriesProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// GetName returns the name of the underlying provider.
func (p *CachedProvider) GetName() string {
	return p.provider.GetName() + " (cached)"
}

// LoadSeries loads from cache when possible, falling back to the
// underlying provider.
func (p *CachedProvider) LoadSeries(path string) ([]types.OHLCV, error) {
	if data, ok := p.cache.Get(path); ok {
		return data, nil
	}

	data, err := p.provider.LoadSeries(path)
	if err != nil {
		return nil, err
	}
	p.cache.Set(path, data)
	return data, nil
}

// ValidateSeries delegates to the underlying provider.
func (p *CachedProvider) ValidateSeries(data []types.OHLCV) error {
	return p.provider.ValidateSeries(data)
}
