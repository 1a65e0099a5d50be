// api/audit/memory_repository.go
package audit

import (
	"context"
	"sync"
)

// MemoryRepository keeps entries in insertion order. It backs tests and
// single-binary deployments without Elasticsearch.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Index(ctx context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryRepository) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.PrincipalID != "" && e.PrincipalID != filter.PrincipalID {
			continue
		}
		if filter.Resource != "" && e.Resource != filter.Resource {
			continue
		}
		if filter.Source != "" && e.Source != filter.Source {
			continue
		}
		if filter.Allowed != nil && e.Allowed != *filter.Allowed {
			continue
		}
		if !filter.From.IsZero() && e.Timestamp.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Timestamp.After(filter.To) {
			continue
		}
		matched = append(matched, e)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []Entry{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Entries returns a copy of everything recorded, in insertion order.
func (r *MemoryRepository) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
