// api/audit/service_test.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/cobaltsec/aegis/api/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "aegis-audit-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	defer logger.Sync()
	m.Run()
}

// blockingRepository gates every Index call until released.
type blockingRepository struct {
	inner *MemoryRepository
	gate  chan struct{}
}

func (r *blockingRepository) Index(ctx context.Context, entry Entry) error {
	<-r.gate
	return r.inner.Index(ctx, entry)
}

func (r *blockingRepository) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	return r.inner.Query(ctx, filter)
}

// flakyRepository fails the first failures calls, then succeeds.
type flakyRepository struct {
	inner    *MemoryRepository
	failures int32
	calls    int32
}

func (r *flakyRepository) Index(ctx context.Context, entry Entry) error {
	if atomic.AddInt32(&r.calls, 1) <= atomic.LoadInt32(&r.failures) {
		return errors.New("cluster unreachable")
	}
	return r.inner.Index(ctx, entry)
}

func (r *flakyRepository) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	return r.inner.Query(ctx, filter)
}

func entryFor(principalID string, i int) Entry {
	return Entry{
		PrincipalID: principalID,
		Resource:    fmt.Sprintf("invoice:inv-%d", i),
		Action:      "view",
		Allowed:     true,
		Source:      SourceEngine,
	}
}

func TestServiceLogAssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, Options{})

	svc.Log(context.Background(), entryFor("alice", 0))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestServicePreservesSubmissionOrder(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, Options{QueueSize: 256})

	const n = 100
	for i := 0; i < n; i++ {
		svc.Log(context.Background(), entryFor("alice", i))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	entries := repo.Entries()
	require.Len(t, entries, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("invoice:inv-%d", i), entries[i].Resource)
	}
}

func TestServiceFullQueueWritesSynchronously(t *testing.T) {
	blocking := &blockingRepository{inner: NewMemoryRepository(), gate: make(chan struct{})}
	svc := NewService(blocking, Options{QueueSize: 2})

	// The worker blocks on the first entry; two more fill the queue.
	for i := 0; i < 3; i++ {
		svc.Log(context.Background(), entryFor("alice", i))
	}

	// This one cannot be queued. The caller must block on the synchronous
	// write rather than drop it.
	done := make(chan struct{})
	go func() {
		svc.Log(context.Background(), entryFor("alice", 3))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("overflow entry returned before the repository accepted it")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocking.gate)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("overflow entry never persisted")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))
	assert.Len(t, blocking.inner.Entries(), 4, "no entry may be dropped")
}

func TestServiceCloseNotBlockedBySynchronousWriter(t *testing.T) {
	blocking := &blockingRepository{inner: NewMemoryRepository(), gate: make(chan struct{})}
	svc := NewService(blocking, Options{QueueSize: 1})

	// Worker blocks on the first entry, the second fills the queue, the
	// third overflows into a synchronous write that is stuck in the
	// repository.
	for i := 0; i < 2; i++ {
		svc.Log(context.Background(), entryFor("alice", i))
	}
	overflowDone := make(chan struct{})
	go func() {
		svc.Log(context.Background(), entryFor("alice", 2))
		close(overflowDone)
	}()
	time.Sleep(50 * time.Millisecond)

	// Close must reach its drain deadline; a stuck synchronous writer may
	// not hold the service lock through its write.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := svc.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	close(blocking.gate)
	select {
	case <-overflowDone:
	case <-time.After(2 * time.Second):
		t.Fatal("overflow entry never persisted")
	}
}

func TestServiceRetriesTransientFailures(t *testing.T) {
	flaky := &flakyRepository{inner: NewMemoryRepository(), failures: 2}
	svc := NewService(flaky, Options{Retries: 3, RetryBackoff: time.Millisecond})

	svc.Log(context.Background(), entryFor("alice", 0))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	assert.Equal(t, int32(3), atomic.LoadInt32(&flaky.calls))
	assert.Len(t, flaky.inner.Entries(), 1)
}

func TestServiceExhaustedRetriesDoNotBlockDraining(t *testing.T) {
	flaky := &flakyRepository{inner: NewMemoryRepository(), failures: 100}
	svc := NewService(flaky, Options{Retries: 2, RetryBackoff: time.Millisecond})

	// The write fails terminally; the entry lands in the error log and the
	// worker moves on.
	svc.Log(context.Background(), entryFor("alice", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&flaky.calls))
	assert.Empty(t, flaky.inner.Entries())
}

func TestServiceCloseDrainsQueue(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, Options{QueueSize: 64})

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				svc.Log(context.Background(), entryFor(fmt.Sprintf("p-%d", p), i))
			}
		}(p)
	}
	wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))
	assert.Len(t, repo.Entries(), 40)

	// Logging after Close still persists, synchronously.
	svc.Log(context.Background(), entryFor("late", 0))
	assert.Len(t, repo.Entries(), 41)
}

func TestServiceCloseIsIdempotent(t *testing.T) {
	svc := NewService(NewMemoryRepository(), Options{})
	ctx := context.Background()
	require.NoError(t, svc.Close(ctx))
	require.NoError(t, svc.Close(ctx))
}

func TestMemoryRepositoryQueryFilters(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	denied := Entry{PrincipalID: "bob", Resource: "invoice:inv-1", Allowed: false, Source: SourceRouter, Timestamp: base.Add(time.Hour)}

	require.NoError(t, repo.Index(context.Background(), Entry{PrincipalID: "alice", Resource: "invoice:inv-1", Allowed: true, Source: SourceEngine, Timestamp: base}))
	require.NoError(t, repo.Index(context.Background(), denied))

	got, err := repo.Query(context.Background(), Filter{PrincipalID: "bob"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SourceRouter, got[0].Source)

	allowed := false
	got, err = repo.Query(context.Background(), Filter{Allowed: &allowed})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.Query(context.Background(), Filter{From: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.Query(context.Background(), Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].PrincipalID)
}
