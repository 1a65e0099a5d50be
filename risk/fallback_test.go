// api/risk/fallback_test.go
package risk_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/risk"
)

type scorerFunc func(ctx context.Context, access risk.AccessContext) (risk.Assessment, error)

func (f scorerFunc) Score(ctx context.Context, access risk.AccessContext) (risk.Assessment, error) {
	return f(ctx, access)
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "aegis-risk-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	defer logger.Sync()
	m.Run()
}

func TestFallbackScorerPrimaryAnswers(t *testing.T) {
	primary := scorerFunc(func(ctx context.Context, access risk.AccessContext) (risk.Assessment, error) {
		return risk.Assessment{Score: 0.42}, nil
	})
	s := risk.NewFallbackScorer(primary, risk.NewRuleScorer(), 100*time.Millisecond)

	got, err := s.Score(context.Background(), risk.AccessContext{PrincipalID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 0.42, got.Score)
	assert.NotContains(t, got.Anomalies, risk.AnomalyFallback)
}

func TestFallbackScorerPrimaryError(t *testing.T) {
	primary := scorerFunc(func(ctx context.Context, access risk.AccessContext) (risk.Assessment, error) {
		return risk.Assessment{}, errors.New("model offline")
	})
	s := risk.NewFallbackScorer(primary, risk.NewRuleScorer(), 100*time.Millisecond)

	got, err := s.Score(context.Background(), risk.AccessContext{
		PrincipalID: "alice",
		Roles:       []string{"finance_analyst"},
		Resource:    "project:p-1",
		At:          time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Zero(t, got.Score)
	assert.Contains(t, got.Anomalies, risk.AnomalyFallback)
}

func TestFallbackScorerPrimaryTimeout(t *testing.T) {
	primary := scorerFunc(func(ctx context.Context, access risk.AccessContext) (risk.Assessment, error) {
		select {
		case <-time.After(5 * time.Second):
			return risk.Assessment{Score: 0.9}, nil
		case <-ctx.Done():
			return risk.Assessment{}, ctx.Err()
		}
	})
	s := risk.NewFallbackScorer(primary, risk.NewRuleScorer(), 20*time.Millisecond)

	start := time.Now()
	got, err := s.Score(context.Background(), risk.AccessContext{
		PrincipalID: "alice",
		Resource:    "finance_report:fr-1",
		At:          time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	// Off hours + sensitive + no roles: clamped to 1.
	assert.Equal(t, 1.0, got.Score)
	assert.Contains(t, got.Anomalies, risk.AnomalyFallback)
}

func TestFallbackScorerNilPrimary(t *testing.T) {
	s := risk.NewFallbackScorer(nil, risk.NewRuleScorer(), time.Second)

	got, err := s.Score(context.Background(), risk.AccessContext{
		PrincipalID: "alice",
		Roles:       []string{"finance_analyst"},
		Resource:    "project:p-1",
		At:          time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Anomalies)
}
