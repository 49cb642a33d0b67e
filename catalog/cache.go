package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

// prefixedCache wraps a byte cache with a key prefix and JSON encoding, so
// several typed caches can share one backing store.
type prefixedCache[T any] struct {
	cache  *cache.Cache[[]byte]
	prefix string
	ttl    time.Duration
}

func newPrefixedCache[T any](c *cache.Cache[[]byte], prefix string, ttl time.Duration) *prefixedCache[T] {
	return &prefixedCache[T]{
		cache:  c,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (p *prefixedCache[T]) get(ctx context.Context, key any) (T, error) {
	data, err := p.cache.Get(ctx, p.prefix+fmt.Sprintf("%v", key))
	if err != nil {
		return *new(T), err
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

func (p *prefixedCache[T]) set(ctx context.Context, key any, object T) error {
	data, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, p.prefix+fmt.Sprintf("%v", key), data, store.WithExpiration(p.ttl))
}

func (p *prefixedCache[T]) delete(ctx context.Context, key any) error {
	return p.cache.Delete(ctx, p.prefix+fmt.Sprintf("%v", key))
}

func newMemoryCache(ttl time.Duration) *cache.Cache[[]byte] {
	gocacheClient := gocache.New(ttl, 2*ttl)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return cache.New[[]byte](gocacheStore)
}
