// api/risk/rule_scorer_test.go
package risk_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltsec/aegis/api/risk"
)

func TestRuleScorerSignals(t *testing.T) {
	scorer := risk.NewRuleScorer()
	businessHours := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	nightTime := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		access risk.AccessContext
		score  float64
	}{
		{
			name: "benign daytime access",
			access: risk.AccessContext{
				PrincipalID: "alice",
				Roles:       []string{"finance_analyst"},
				Resource:    "project:p-1",
				Action:      "view",
				At:          businessHours,
			},
			score: 0,
		},
		{
			name: "off hours",
			access: risk.AccessContext{
				PrincipalID: "alice",
				Roles:       []string{"finance_analyst"},
				Resource:    "project:p-1",
				Action:      "view",
				At:          nightTime,
			},
			score: 0.3,
		},
		{
			name: "sensitive resource",
			access: risk.AccessContext{
				PrincipalID: "alice",
				Roles:       []string{"finance_analyst"},
				Resource:    "Payroll_Record:pr-9",
				Action:      "view",
				At:          businessHours,
			},
			score: 0.2,
		},
		{
			name: "no roles",
			access: risk.AccessContext{
				PrincipalID: "ghost",
				Resource:    "project:p-1",
				Action:      "view",
				At:          businessHours,
			},
			score: 0.5,
		},
		{
			name: "all signals clamp to one",
			access: risk.AccessContext{
				PrincipalID: "ghost",
				Resource:    "finance_report:fr-1",
				Action:      "view",
				At:          nightTime,
			},
			score: 1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tc.access)
			require.NoError(t, err)
			assert.InDelta(t, tc.score, got.Score, 1e-9)
		})
	}
}

func TestRuleScorerDeterministic(t *testing.T) {
	scorer := risk.NewRuleScorer()
	access := risk.AccessContext{
		PrincipalID: "alice",
		Roles:       []string{"finance_analyst"},
		Resource:    "hr_profile:e-7",
		Action:      "edit",
		At:          time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC),
	}

	first, err := scorer.Score(context.Background(), access)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := scorer.Score(context.Background(), access)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRuleScorerBusinessWindowBoundaries(t *testing.T) {
	scorer := risk.NewRuleScorer()
	access := risk.AccessContext{
		PrincipalID: "alice",
		Roles:       []string{"finance_analyst"},
		Resource:    "project:p-1",
		Action:      "view",
	}

	// Both boundary hours are inside the window.
	access.At = time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	got, err := scorer.Score(context.Background(), access)
	require.NoError(t, err)
	assert.Zero(t, got.Score)

	access.At = time.Date(2026, 3, 2, 22, 59, 0, 0, time.UTC)
	got, err = scorer.Score(context.Background(), access)
	require.NoError(t, err)
	assert.Zero(t, got.Score)

	access.At = time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	got, err = scorer.Score(context.Background(), access)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got.Score, 1e-9)
}
