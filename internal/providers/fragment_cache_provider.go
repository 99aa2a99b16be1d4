package providers

import (
	"github.com/coocood/freecache"
	"livevote/internal/structures"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	EntryCount() int64
}

// FragmentCache holds rendered HTML fragments in freecache. Keys carry the
// snapshot version, so an entry is never stale; the TTL and the LRU only
// bound how long superseded versions occupy memory.
type FragmentCache struct {
	cache   *freecache.Cache
	ttl     int
	metrics MetricsProviderInterface
}

func (c *FragmentCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *FragmentCache) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

func (c *FragmentCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

// NewFragmentCacheProvider returns a no-op cache when caching is disabled,
// so a disabled cache never reports misses.
func NewFragmentCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Fragment cache disabled")
		return &noopCache{}
	}

	ttl := 0
	if conf.Cache.TTL > 0 {
		ttl = max(int(conf.Cache.TTL.Seconds()), 1)
	}
	logger.Infof(TypeApp, "Fragment cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &FragmentCache{
		cache:   freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:     ttl,
		metrics: metrics,
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) EntryCount() int64           { return 0 }
