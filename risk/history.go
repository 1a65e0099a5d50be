// api/risk/history.go
package risk

import (
	"sync"
	"time"
)

// HistoryEntry is one recorded access outcome.
type HistoryEntry struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	Granted  bool      `json:"granted"`
	At       time.Time `json:"at"`
}

// HistoryStore tracks per-principal access outcomes for the predictive
// scorer. Implementations bound what they keep; readers additionally apply
// a time window.
type HistoryStore interface {
	Record(principalID string, entry HistoryEntry)
	Recent(principalID string, limit int, since time.Time) []HistoryEntry
}

// MemoryHistory keeps the most recent entries per principal, oldest first
// internally, capped at limit.
type MemoryHistory struct {
	mu      sync.Mutex
	limit   int
	entries map[string][]HistoryEntry
}

func NewMemoryHistory(limit int) *MemoryHistory {
	if limit <= 0 {
		limit = 50
	}
	return &MemoryHistory{limit: limit, entries: make(map[string][]HistoryEntry)}
}

func (h *MemoryHistory) Record(principalID string, entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := append(h.entries[principalID], entry)
	if len(list) > h.limit {
		list = list[len(list)-h.limit:]
	}
	h.entries[principalID] = list
}

// Recent returns entries at or after since, newest first, capped at limit.
func (h *MemoryHistory) Recent(principalID string, limit int, since time.Time) []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.entries[principalID]
	out := make([]HistoryEntry, 0, limit)
	for i := len(list) - 1; i >= 0; i-- {
		if len(out) == limit {
			break
		}
		if list[i].At.Before(since) {
			continue
		}
		out = append(out, list[i])
	}
	return out
}
