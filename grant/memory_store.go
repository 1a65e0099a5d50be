// api/grant/memory_store.go
package grant

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cobaltsec/aegis/api/model"
)

// MemoryStore is the process-local grant store used by tests and
// single-binary deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	grants map[string]map[string]model.Grant
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		grants: make(map[string]map[string]model.Grant),
		now:    time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, g model.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := s.grants[g.PrincipalID]
	if byKey == nil {
		byKey = make(map[string]model.Grant)
		s.grants[g.PrincipalID] = byKey
	}
	byKey[fieldKey(g.PermissionRef(), g.ObjectRef())] = g
	return nil
}

// Delete removes a grant if present. Deleting an absent grant is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, principalID, permRef, objectRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants[principalID], fieldKey(permRef, objectRef))
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, principalID, permRef, objectRef string) (*model.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[principalID][fieldKey(permRef, objectRef)]
	if !ok || g.Expired(s.now()) {
		return nil, nil
	}
	out := g
	return &out, nil
}

func (s *MemoryStore) ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]model.Grant, 0, len(s.grants[principalID]))
	for _, g := range s.grants[principalID] {
		if g.Expired(now) {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GrantedAt.Equal(out[j].GrantedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].GrantedAt.Before(out[j].GrantedAt)
	})
	return out, nil
}
