// api/dao/memory_directory.go
package dao

import (
	"context"
	"sync"

	"github.com/cobaltsec/aegis/api/model"
)

// MemoryDirectory is the process-local principal directory used by tests
// and single-binary deployments.
type MemoryDirectory struct {
	mu         sync.RWMutex
	principals map[string]model.Principal
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{principals: make(map[string]model.Principal)}
}

func (d *MemoryDirectory) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.principals[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (d *MemoryDirectory) UpsertPrincipal(ctx context.Context, principal model.Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.principals[principal.ID] = principal
	return nil
}
