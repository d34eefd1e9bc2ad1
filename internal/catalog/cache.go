package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is bumped when cached entry shapes change so old
// entries are dropped on read.
const CacheSchemaVersion = "1.0"

type cachedEntry struct {
	Version  string
	Value    any
	CachedAt time.Time
}

// entryCache is an expiring LRU of catalog definitions keyed by kind and code
type entryCache struct {
	lru *expirable.LRU[string, *cachedEntry]
}

func newEntryCache(size int, ttl time.Duration) *entryCache {
	return &entryCache{
		lru: expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

func cacheKey(kind, code string) string {
	return kind + ":" + code
}

func (c *entryCache) Get(kind, code string) (any, bool) {
	key := cacheKey(kind, code)
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Value, true
}

func (c *entryCache) Set(kind, code string, value any) {
	c.lru.Add(cacheKey(kind, code), &cachedEntry{
		Version:  CacheSchemaVersion,
		Value:    value,
		CachedAt: time.Now(),
	})
}

func (c *entryCache) Clear() {
	c.lru.Purge()
}

func (c *entryCache) Len() int {
	return c.lru.Len()
}
