// api/risk/rule_scorer.go
package risk

import (
	"context"
	"strings"
	"time"
)

// RuleScorer is the deterministic scorer: a fixed set of additive signals,
// clamped to [0,1]. It is always available and serves as the fallback when
// the predictive scorer cannot answer.
type RuleScorer struct {
	BusinessStart      int
	BusinessEnd        int
	SensitiveResources []string
}

// NewRuleScorer returns a scorer with the default business window
// (06:00-22:00, both hours inclusive) and sensitive resource markers.
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{
		BusinessStart:      6,
		BusinessEnd:        22,
		SensitiveResources: []string{"finance", "hr", "payroll", "admin", "system"},
	}
}

func (s *RuleScorer) Score(ctx context.Context, access AccessContext) (Assessment, error) {
	at := access.At
	if at.IsZero() {
		at = time.Now()
	}

	score := 0.0
	anomalies := []string{}

	hour := at.Hour()
	if hour < s.BusinessStart || hour > s.BusinessEnd {
		score += 0.3
		anomalies = append(anomalies, "Access outside normal business hours")
	}

	resource := strings.ToLower(access.Resource)
	for _, marker := range s.SensitiveResources {
		if strings.Contains(resource, strings.ToLower(marker)) {
			score += 0.2
			break
		}
	}

	if len(access.Roles) == 0 {
		score += 0.5
		anomalies = append(anomalies, "User has no assigned roles")
	}

	score = clamp(score)

	recommendations := []string{}
	if score > 0.5 {
		recommendations = append(recommendations, "Monitor access closely")
	}

	return Assessment{Score: score, Anomalies: anomalies, Recommendations: recommendations}, nil
}
