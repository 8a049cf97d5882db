package engine

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gcbaptista/inverted-index/index"
	"github.com/gcbaptista/inverted-index/internal/metrics"
	"github.com/gcbaptista/inverted-index/internal/search"
)

// resultCache keeps recent lookups. Keys include the identity of the index
// they were computed against, so an entry can never outlive a replaced index;
// purge only reclaims memory. A nil *resultCache is a disabled cache.
type resultCache struct {
	cache   *lru.Cache[string, []search.Hit]
	metrics *metrics.Metrics
}

func newResultCache(size int, m *metrics.Metrics) *resultCache {
	if size <= 0 {
		return nil
	}
	cache, err := lru.New[string, []search.Hit](size)
	if err != nil {
		return nil
	}
	return &resultCache{cache: cache, metrics: m}
}

// cacheKey joins words with a space; words never contain whitespace, so
// distinct word lists give distinct keys.
func cacheKey(ii *index.InvertedIndex, words []string) string {
	return fmt.Sprintf("%p\x00%s", ii, strings.Join(words, " "))
}

func (c *resultCache) get(key string) ([]search.Hit, bool) {
	if c == nil {
		return nil, false
	}
	hits, ok := c.cache.Get(key)
	if ok {
		c.metrics.CacheHitsTotal.Inc()
	} else {
		c.metrics.CacheMissesTotal.Inc()
	}
	return hits, ok
}

func (c *resultCache) add(key string, hits []search.Hit) {
	if c == nil {
		return
	}
	c.cache.Add(key, hits)
}

func (c *resultCache) purge() {
	if c == nil {
		return
	}
	c.cache.Purge()
}

func (c *resultCache) size() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
