package postcode

import (
	"context"
	"errors"
	"time"

	"github.com/proclimb/minisystem/pkg/cache"
)

// MemoryCache fronts a Directory with in-process LRUs.
// Found records and not-found answers are cached with separate TTLs;
// lookup failures are never cached.
type MemoryCache struct {
	next   Directory
	hits   *cache.LRU[string, Record]
	misses *cache.LRU[string, struct{}]
}

// NewMemoryCache wraps next. size bounds each LRU.
func NewMemoryCache(next Directory, size int, ttl, missTTL time.Duration, opts ...cache.Option) *MemoryCache {
	return &MemoryCache{
		next:   next,
		hits:   cache.New[string, Record](size, append([]cache.Option{cache.WithTTL(ttl)}, opts...)...),
		misses: cache.New[string, struct{}](size, append([]cache.Option{cache.WithTTL(missTTL)}, opts...)...),
	}
}

func (c *MemoryCache) Lookup(ctx context.Context, code string) (Record, error) {
	if rec, ok := c.hits.Get(code); ok {
		return rec, nil
	}
	if _, ok := c.misses.Get(code); ok {
		return Record{}, ErrNotFound
	}

	rec, err := c.next.Lookup(ctx, code)
	switch {
	case err == nil:
		c.hits.Put(code, rec)
	case errors.Is(err, ErrNotFound):
		c.misses.Put(code, struct{}{})
	}
	return rec, err
}
