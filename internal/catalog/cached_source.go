package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CachedSource is a cache-aside decorator over a Source. Concurrent misses
// for the same query share one upstream call.
type CachedSource struct {
	inner Source
	cache repository.CacheRepository
	ttl   time.Duration
	log   logger.Logger
	group singleflight.Group
}

func NewCachedSource(inner Source, cache repository.CacheRepository, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (c *CachedSource) Name() string { return c.inner.Name() }

func (c *CachedSource) Fetch(ctx context.Context, q Query) (*SourcePage, error) {
	key := q.CacheKey()

	if page, ok := c.lookup(ctx, key); ok {
		return page, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		page, err := c.inner.Fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		// Empty pages are not cached so the fallback path is retried next time.
		if page != nil && len(page.Products) > 0 {
			c.store(ctx, key, page)
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debugf("Catalog request shared with in-flight fetch: %s", key)
	}
	return v.(*SourcePage), nil
}

func (c *CachedSource) lookup(ctx context.Context, key string) (*SourcePage, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.log.Warnf("Catalog cache read failed for %s: %v", key, err)
		}
		return nil, false
	}
	var page SourcePage
	if err := json.Unmarshal(data, &page); err != nil {
		c.log.Warnf("Dropping undecodable catalog cache entry %s: %v", key, err)
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}
	return &page, true
}

func (c *CachedSource) store(ctx context.Context, key string, page *SourcePage) {
	data, err := json.Marshal(page)
	if err != nil {
		c.log.Warnf("Could not encode catalog page for cache: %v", err)
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warnf("Catalog cache write failed for %s: %v", key, err)
	}
}
