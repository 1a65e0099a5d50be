// api/risk/scorer.go
package risk

import (
	"context"
	"time"
)

// AccessContext carries everything a scorer may consider for one request.
// At is the request-local evaluation time; the engine always sets it.
type AccessContext struct {
	PrincipalID string            `json:"principal_id"`
	Roles       []string          `json:"roles"`
	Resource    string            `json:"resource"`
	Action      string            `json:"action"`
	At          time.Time         `json:"at"`
	Env         map[string]string `json:"env,omitempty"`
	History     []HistoryEntry    `json:"history,omitempty"`
}

// Assessment is a scorer verdict. Score is clamped to [0,1]; the engine
// compares it against the configured threshold.
type Assessment struct {
	Score           float64  `json:"risk_score"`
	Anomalies       []string `json:"anomalies"`
	Recommendations []string `json:"recommendations"`
}

// Scorer produces a risk assessment for an access request. Implementations
// must honor ctx cancellation.
type Scorer interface {
	Score(ctx context.Context, access AccessContext) (Assessment, error)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
