// api/pdp/engine/cache_test.go
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltsec/aegis/api/model"
	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
)

func testKey(principalID string) pdp_model.CacheKey {
	return pdp_model.CacheKey{
		PrincipalID: principalID,
		Module:      model.ModuleFinanceEstimation,
		Action:      model.ActionView,
		ObjectRef:   "invoice:inv-1",
	}
}

func TestCacheGetOrComputeMemoizes(t *testing.T) {
	cache := NewDecisionCache(time.Minute, time.Second)
	key := testKey("alice")

	var calls int32
	compute := func(ctx context.Context) (pdp_model.CheckResult, error) {
		atomic.AddInt32(&calls, 1)
		return pdp_model.CheckResult{Allowed: true, RiskScore: 0.1}, nil
	}

	first, err := cache.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, first.Allowed)

	second, err := cache.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, second.Allowed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCacheEntryExpires(t *testing.T) {
	cache := NewDecisionCache(time.Minute, time.Second)
	key := testKey("alice")

	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	cache.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}

	var calls int32
	compute := func(ctx context.Context) (pdp_model.CheckResult, error) {
		atomic.AddInt32(&calls, 1)
		return pdp_model.CheckResult{Allowed: true}, nil
	}

	_, err := cache.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)

	mu.Lock()
	clock = clock.Add(2 * time.Minute)
	mu.Unlock()

	res, err := cache.GetOrCompute(context.Background(), key, compute)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCacheCollapsesConcurrentComputes(t *testing.T) {
	cache := NewDecisionCache(time.Minute, 5*time.Second)
	key := testKey("alice")

	var calls int32
	gate := make(chan struct{})
	compute := func(ctx context.Context) (pdp_model.CheckResult, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return pdp_model.CheckResult{Allowed: true}, nil
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]pdp_model.CheckResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.GetOrCompute(context.Background(), key, compute)
		}(i)
	}

	// Give every goroutine time to join the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Allowed)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCacheSlowFlightFallsBackToOwnCompute(t *testing.T) {
	cache := NewDecisionCache(time.Minute, 20*time.Millisecond)
	key := testKey("alice")

	release := make(chan struct{})
	var calls int32
	slow := func(ctx context.Context) (pdp_model.CheckResult, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
		}
		return pdp_model.CheckResult{Allowed: true}, nil
	}

	res, err := cache.GetOrCompute(context.Background(), key, slow)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	// The waiter gave up on the shared flight and computed on its own.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	close(release)
}

func TestCacheForceComputeWritesThrough(t *testing.T) {
	cache := NewDecisionCache(time.Minute, time.Second)
	key := testKey("alice")

	_, err := cache.GetOrCompute(context.Background(), key, func(ctx context.Context) (pdp_model.CheckResult, error) {
		return pdp_model.CheckResult{Allowed: true}, nil
	})
	require.NoError(t, err)

	forced, err := cache.ForceCompute(context.Background(), key, func(ctx context.Context) (pdp_model.CheckResult, error) {
		return pdp_model.CheckResult{Allowed: false, Reason: "revoked"}, nil
	})
	require.NoError(t, err)
	assert.False(t, forced.Allowed)

	// The forced result replaced the cached entry.
	res, err := cache.GetOrCompute(context.Background(), key, func(ctx context.Context) (pdp_model.CheckResult, error) {
		t.Fatal("should be served from cache")
		return pdp_model.CheckResult{}, nil
	})
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.False(t, res.Allowed)
}

func TestCacheForceComputeCanceledCallerNotStored(t *testing.T) {
	cache := NewDecisionCache(time.Minute, time.Second)
	key := testKey("alice")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	truncated, err := cache.ForceCompute(ctx, key, func(ctx context.Context) (pdp_model.CheckResult, error) {
		return pdp_model.CheckResult{Allowed: false, Reason: "evaluation canceled before risk scoring"}, nil
	})
	require.NoError(t, err)
	assert.False(t, truncated.Allowed)

	// The truncated verdict went only to the canceled caller; the next
	// healthy caller computes fresh instead of reading it back.
	assert.Equal(t, 0, cache.Len())
	res, err := cache.GetOrCompute(context.Background(), key, func(ctx context.Context) (pdp_model.CheckResult, error) {
		return pdp_model.CheckResult{Allowed: true}, nil
	})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.True(t, res.Allowed)
}

func TestCacheInvalidatePrincipal(t *testing.T) {
	cache := NewDecisionCache(time.Minute, time.Second)

	for _, id := range []string{"alice", "bob"} {
		_, err := cache.GetOrCompute(context.Background(), testKey(id), func(ctx context.Context) (pdp_model.CheckResult, error) {
			return pdp_model.CheckResult{Allowed: true}, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, cache.Len())

	cache.InvalidatePrincipal("alice")
	assert.Equal(t, 1, cache.Len())

	res, err := cache.GetOrCompute(context.Background(), testKey("bob"), nil)
	require.NoError(t, err)
	assert.True(t, res.Cached)

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}
