// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Entry sources.
const (
	SourceEngine = "engine"
	SourceRouter = "router"
	SourceGrants = "grants"
)

// Entry is one audit record. Every decision produces exactly one, whether
// allowed or denied, computed or served from cache metadata.
type Entry struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	PrincipalID string          `json:"principal_id"`
	Resource    string          `json:"resource"`
	Action      string          `json:"action"`
	Allowed     bool            `json:"allowed"`
	RiskScore   float64         `json:"risk_score"`
	Anomalies   []string        `json:"anomalies,omitempty"`
	Cached      bool            `json:"cached"`
	Source      string          `json:"source"`
	Partition   string          `json:"partition,omitempty"`
	Operation   string          `json:"operation,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
}

// Filter narrows a query. Zero fields match everything.
type Filter struct {
	PrincipalID string    `json:"principal_id,omitempty"`
	Resource    string    `json:"resource,omitempty"`
	Source      string    `json:"source,omitempty"`
	Allowed     *bool     `json:"allowed,omitempty"`
	From        time.Time `json:"from,omitempty"`
	To          time.Time `json:"to,omitempty"`
	Limit       int       `json:"limit,omitempty"`
	Offset      int       `json:"offset,omitempty"`
}
