// api/model/partition.go
package model

import "time"

// Tier orders partitions by sensitivity. Write access to TierRestricted and
// above additionally requires a role flagged as a sensitive writer.
type Tier string

const (
	TierPublic     Tier = "PUBLIC"
	TierInternal   Tier = "INTERNAL"
	TierRestricted Tier = "RESTRICTED"
	TierCritical   Tier = "CRITICAL"
)

var tierRank = map[Tier]int{
	TierPublic:     0,
	TierInternal:   1,
	TierRestricted: 2,
	TierCritical:   3,
}

func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

func (t Tier) AtLeast(other Tier) bool {
	return tierRank[t] >= tierRank[other]
}

// Sensitive reports whether writes to this tier need the sensitive-writer
// role flag.
func (t Tier) Sensitive() bool {
	return t.AtLeast(TierRestricted)
}

// Partition is a named data partition with a sensitivity tier.
type Partition struct {
	Name        string `json:"name"`
	Tier        Tier   `json:"tier"`
	Description string `json:"description,omitempty"`
}

type RouteRequest struct {
	ResourceType string    `json:"resource_type" binding:"required"`
	Operation    Operation `json:"operation" binding:"required"`
	PrincipalID  string    `json:"principal_id" binding:"required"`
}

// RouteDecision is the outcome of a routing check. Partition is always set,
// even on deny, so callers can log where the request was headed.
type RouteDecision struct {
	Partition string  `json:"partition"`
	Tier      Tier    `json:"tier"`
	Allowed   bool    `json:"allowed"`
	RiskScore float64 `json:"risk_score"`
	Reason    string  `json:"reason,omitempty"`
}

// RoutingRecord is one entry of a principal's rolling routing history.
type RoutingRecord struct {
	Partition string    `json:"partition"`
	Operation Operation `json:"operation"`
	Allowed   bool      `json:"allowed"`
	RiskScore float64   `json:"risk_score"`
	At        time.Time `json:"at"`
}
