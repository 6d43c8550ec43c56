package index

import (
	"context"
	"time"

	"github.com/zjrosen/zenedit/internal/cachemanager"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/log"
)

// Cached memoizes query results of another index for a TTL.
type Cached struct {
	inner completion.Index
	cache *cachemanager.InMemoryCacheManager[string, []completion.Match]
	rtc   *cachemanager.ReadThroughCache[string, []completion.Match, string]
	ttl   time.Duration
}

// NewCached wraps inner. A ttl <= 0 disables caching.
func NewCached(name string, inner completion.Index, ttl time.Duration) *Cached {
	cache := cachemanager.NewInMemoryCacheManager[string, []completion.Match](
		"index:"+name, ttl, cachemanager.DefaultCleanupInterval)
	search := func(_ context.Context, query string) ([]completion.Match, error) {
		return inner.Search(query)
	}
	return &Cached{
		inner: inner,
		cache: cache,
		rtc:   cachemanager.NewReadThroughCache[string, []completion.Match, string](cache, search, ttl <= 0),
		ttl:   ttl,
	}
}

// Search serves query from cache or the wrapped index. Errors are not cached.
func (c *Cached) Search(query string) ([]completion.Match, error) {
	return c.rtc.GetWithRefresh(context.Background(), query, query, c.ttl)
}

// Invalidate drops every cached result.
func (c *Cached) Invalidate() {
	if err := c.rtc.Invalidate(context.Background()); err != nil {
		log.ErrorErr(log.CatIndex, "cache invalidate failed", err)
	}
}

// Stats reports cache counters.
func (c *Cached) Stats() cachemanager.Stats {
	return c.cache.Stats()
}
