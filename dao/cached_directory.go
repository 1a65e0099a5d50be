// api/dao/cached_directory.go
package dao

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/cobaltsec/aegis/api/model"
)

// Directory is the lookup surface the engine and router consume.
type Directory interface {
	GetPrincipal(ctx context.Context, id string) (*model.Principal, error)
}

// CachedDirectory is a read-through ristretto cache in front of a slower
// directory. A cached profile can be stale for at most the TTL; admin
// mutations call Invalidate to tighten that. Ristretto's admission policy
// may decline to cache an entry, which only costs a repeat lookup.
type CachedDirectory struct {
	inner Directory
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedDirectory(inner Directory, maxEntries int64, ttl time.Duration) (*CachedDirectory, error) {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedDirectory{inner: inner, cache: cache, ttl: ttl}, nil
}

func (d *CachedDirectory) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	if v, ok := d.cache.Get(id); ok {
		p := v.(model.Principal)
		return &p, nil
	}

	p, err := d.inner.GetPrincipal(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		d.cache.SetWithTTL(id, *p, 1, d.ttl)
	}
	return p, nil
}

// Invalidate drops a principal's cached profile.
func (d *CachedDirectory) Invalidate(id string) {
	d.cache.Del(id)
}

// Close releases the cache's internal goroutines.
func (d *CachedDirectory) Close() {
	d.cache.Close()
}
