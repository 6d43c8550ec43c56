// Package cachemanager provides a typed TTL cache and a read-through helper.
// The ranked-search indexes use it to memoize query results between
// keystrokes.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value cache with per-entry TTLs.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}

// Stats counts lookups served by a cache since creation or the last Flush.
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}
