// api/pdp/engine/cache.go
package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
)

type computeFunc func(ctx context.Context) (pdp_model.CheckResult, error)

// DecisionCache memoizes decisions per structured key with a TTL and
// collapses concurrent computations of the same key into one. Admission is
// deterministic: a stored decision is always visible to the next caller
// until it expires or is invalidated.
type DecisionCache struct {
	mu      sync.RWMutex
	entries map[pdp_model.CacheKey]pdp_model.CacheEntry

	group singleflight.Group
	ttl   time.Duration
	wait  time.Duration
	now   func() time.Time
}

func NewDecisionCache(ttl, wait time.Duration) *DecisionCache {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &DecisionCache{
		entries: make(map[pdp_model.CacheKey]pdp_model.CacheEntry),
		ttl:     ttl,
		wait:    wait,
		now:     time.Now,
	}
}

// GetOrCompute returns the cached decision or computes one, with at most one
// in-flight computation per key. A waiter that outlives the wait budget runs
// its own computation instead of hanging on the shared one; the shared
// computation itself is detached from any single caller's cancellation.
func (c *DecisionCache) GetOrCompute(ctx context.Context, key pdp_model.CacheKey, compute computeFunc) (pdp_model.CheckResult, error) {
	if res, ok := c.lookup(key); ok {
		res.Cached = true
		return res, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		res, err := compute(detached)
		if err != nil {
			return pdp_model.CheckResult{}, err
		}
		c.store(key, res)
		return res, nil
	})

	timer := time.NewTimer(c.wait)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.Err != nil {
			return pdp_model.CheckResult{}, r.Err
		}
		return r.Val.(pdp_model.CheckResult), nil
	case <-timer.C:
		// The in-flight computation is slow; fall back to our own. The slow
		// one still finishes and populates the cache.
		return compute(ctx)
	case <-ctx.Done():
		return pdp_model.CheckResult{}, ctx.Err()
	}
}

// ForceCompute recomputes unconditionally and write-through replaces the
// cached entry. It never joins an in-flight computation, so a concurrent
// GetOrCompute can never fail or stall it.
func (c *DecisionCache) ForceCompute(ctx context.Context, key pdp_model.CacheKey, compute computeFunc) (pdp_model.CheckResult, error) {
	res, err := compute(ctx)
	if err != nil {
		return pdp_model.CheckResult{}, err
	}
	if ctx.Err() != nil {
		// A canceled caller got a truncated evaluation. That verdict belongs
		// to this caller only; storing it would serve the truncation to every
		// healthy caller for the full TTL.
		return res, nil
	}
	c.store(key, res)
	return res, nil
}

// InvalidatePrincipal drops every cached decision for one principal. Grant
// and role changes call this so stale allows do not outlive a revocation.
func (c *DecisionCache) InvalidatePrincipal(principalID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.PrincipalID == principalID {
			delete(c.entries, key)
		}
	}
}

// Purge drops everything. Policy table reloads call this.
func (c *DecisionCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[pdp_model.CacheKey]pdp_model.CacheEntry)
}

func (c *DecisionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *DecisionCache) lookup(key pdp_model.CacheKey) (pdp_model.CheckResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || entry.Expired(c.now()) {
		return pdp_model.CheckResult{}, false
	}
	return entry.Decision, true
}

func (c *DecisionCache) store(key pdp_model.CacheKey, res pdp_model.CheckResult) {
	res.Cached = false
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = pdp_model.CacheEntry{Decision: res, ExpiresAt: c.now().Add(c.ttl)}
}
