package geocode

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultTTL is how long a suggestion result stays fresh.
const DefaultTTL = 24 * time.Hour

// DefaultCapacity bounds how many distinct queries are memoized.
const DefaultCapacity = 4096

type cacheKey struct {
	text string
	topN int
}

// CachedClient memoizes another Client per (query text, result count) with a
// TTL and a capacity-bounded LRU eviction policy. Safe for concurrent use.
type CachedClient struct {
	client Client
	cache  *expirable.LRU[cacheKey, []string]
}

// NewCachedClient wraps client with a cache of the given capacity and TTL.
func NewCachedClient(client Client, capacity int, ttl time.Duration) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  expirable.NewLRU[cacheKey, []string](capacity, nil, ttl),
	}
}

// Suggestions returns the memoized result when fresh, otherwise asks the
// wrapped client and stores the answer. Errors are never cached.
func (c *CachedClient) Suggestions(ctx context.Context, text string, topN int) ([]string, error) {
	key := cacheKey{text: text, topN: topN}
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}
	result, err := c.client.Suggestions(ctx, text, topN)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, result)
	return result, nil
}
