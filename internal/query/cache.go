package query

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes pipeline results. Keys combine the canonical options
// value with the store revision and the calendar day, so all three
// invalidation rules hold by construction: criteria change (different
// key), any write (revision bump), day rollover (relative date buckets
// shift). LRU+TTL bounds what stale entries cost.
type Cache struct {
	lru *expirable.LRU[string, Result]
}

func NewCache(maxSize int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, Result](maxSize, nil, ttl)}
}

func cacheKey(opts Options, rev uint64, now time.Time) string {
	return fmt.Sprintf("%s|rev=%d|day=%s", opts.Normalize().Key(), rev, now.UTC().Format("2006-01-02"))
}

func (c *Cache) Get(opts Options, rev uint64, now time.Time) (Result, bool) {
	return c.lru.Get(cacheKey(opts, rev, now))
}

func (c *Cache) Set(opts Options, rev uint64, now time.Time, res Result) {
	c.lru.Add(cacheKey(opts, rev, now), res)
}

func (c *Cache) Purge() {
	c.lru.Purge()
}
