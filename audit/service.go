// api/audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/cobaltsec/aegis/api/logging"
)

// Service records audit entries without ever failing the decision path and
// answers queries over what was recorded.
type Service interface {
	Log(ctx context.Context, entry Entry)
	Query(ctx context.Context, filter Filter) ([]Entry, error)
	Close(ctx context.Context) error
}

type Options struct {
	QueueSize    int
	Retries      int
	RetryBackoff time.Duration
}

// service drains a bounded queue with a single worker, which keeps entries
// in submission order without serializing producers. A full queue falls back
// to a synchronous write in the caller's goroutine; entries are never dropped.
type service struct {
	repo    Repository
	opts    Options
	ch      chan Entry
	drained chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewService(repo Repository, opts Options) Service {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 100 * time.Millisecond
	}
	s := &service{
		repo:    repo,
		opts:    opts,
		ch:      make(chan Entry, opts.QueueSize),
		drained: make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *service) Log(ctx context.Context, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	s.mu.RLock()
	queued := false
	if !s.closed {
		select {
		case s.ch <- entry:
			queued = true
		default:
			// Queue full: write in the caller's goroutine instead of dropping.
		}
	}
	s.mu.RUnlock()

	// Persist outside the lock so a slow retrying write cannot hold Close
	// hostage before its drain deadline.
	if !queued {
		s.persist(entry)
	}
}

func (s *service) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	return s.repo.Query(ctx, filter)
}

// Close stops accepting queued entries and waits for the worker to drain,
// bounded by ctx.
func (s *service) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	select {
	case <-s.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) drain() {
	for entry := range s.ch {
		s.persist(entry)
	}
	close(s.drained)
}

// persist writes one entry with bounded retries. Persistence is detached
// from the request context; a canceled caller must not lose its entry. On
// final failure the entry goes to the error log so it is never silently lost.
func (s *service) persist(entry Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	for attempt := 0; attempt < s.opts.Retries; attempt++ {
		if err = s.repo.Index(ctx, entry); err == nil {
			return
		}
		time.Sleep(s.opts.RetryBackoff * time.Duration(attempt+1))
	}

	payload, _ := json.Marshal(entry)
	logger.Error("Audit entry could not be persisted",
		zap.Error(err),
		zap.ByteString("entry", payload))
}
