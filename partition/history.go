// api/partition/history.go
package partition

import (
	"sync"

	"github.com/cobaltsec/aegis/api/model"
)

// ring is a fixed-capacity ring of routing records. Writes overwrite the
// oldest entry once full; reads run newest first.
type ring struct {
	buf  []model.RoutingRecord
	next int
	full bool
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]model.RoutingRecord, capacity)}
}

func (r *ring) append(rec model.RoutingRecord) {
	r.buf[r.next] = rec
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

func (r *ring) len() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// snapshot copies the occupied slots, newest first.
func (r *ring) snapshot(limit int) []model.RoutingRecord {
	n := r.len()
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.RoutingRecord, 0, n)
	for i := 1; i <= n; i++ {
		idx := r.next - i
		if idx < 0 {
			idx += len(r.buf)
		}
		out = append(out, r.buf[idx])
	}
	return out
}

// History keeps a bounded rolling routing history per principal. The map is
// guarded by one mutex and each principal's ring by its own, so recording
// for one principal never contends with another once the ring exists.
type History struct {
	mu       sync.RWMutex
	capacity int
	rings    map[string]*lockedRing
}

type lockedRing struct {
	mu   sync.Mutex
	ring *ring
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 100
	}
	return &History{capacity: capacity, rings: make(map[string]*lockedRing)}
}

func (h *History) Record(principalID string, rec model.RoutingRecord) {
	lr := h.ringFor(principalID)
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.ring.append(rec)
}

// Recent returns up to limit records for the principal, most recent first.
// limit <= 0 returns everything retained.
func (h *History) Recent(principalID string, limit int) []model.RoutingRecord {
	h.mu.RLock()
	lr, ok := h.rings[principalID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.ring.snapshot(limit)
}

// Stats counts the retained records and the denials among them.
func (h *History) Stats(principalID string) (total, denied int) {
	h.mu.RLock()
	lr, ok := h.rings[principalID]
	h.mu.RUnlock()
	if !ok {
		return 0, 0
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	for _, rec := range lr.ring.snapshot(0) {
		total++
		if !rec.Allowed {
			denied++
		}
	}
	return total, denied
}

func (h *History) ringFor(principalID string) *lockedRing {
	h.mu.RLock()
	lr, ok := h.rings[principalID]
	h.mu.RUnlock()
	if ok {
		return lr
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if lr, ok = h.rings[principalID]; ok {
		return lr
	}
	lr = &lockedRing{ring: newRing(h.capacity)}
	h.rings[principalID] = lr
	return lr
}
