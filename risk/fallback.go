// api/risk/fallback.go
package risk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	logger "github.com/cobaltsec/aegis/api/logging"
)

// AnomalyFallback is appended to assessments produced by the fallback path
// so callers can tell a degraded evaluation from a predictive one.
const AnomalyFallback = "Predictive scorer unavailable; deterministic fallback used"

// FallbackScorer guards a primary scorer with a timeout. The primary runs in
// its own goroutine so a misbehaving scorer cannot stall the decision path;
// on error or timeout the deterministic fallback answers instead. The
// fallback result is never an error.
type FallbackScorer struct {
	primary  Scorer
	fallback Scorer
	timeout  time.Duration
}

// NewFallbackScorer wires a primary (may be nil for rule-only deployments)
// and a fallback, which must never fail.
func NewFallbackScorer(primary, fallback Scorer, timeout time.Duration) *FallbackScorer {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &FallbackScorer{primary: primary, fallback: fallback, timeout: timeout}
}

func (s *FallbackScorer) Score(ctx context.Context, access AccessContext) (Assessment, error) {
	if s.primary == nil {
		return s.fallback.Score(ctx, access)
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		assessment Assessment
		err        error
	}
	resCh := make(chan result, 1)
	go func() {
		a, err := s.primary.Score(cctx, access)
		resCh <- result{assessment: a, err: err}
	}()

	var err error
	select {
	case r := <-resCh:
		if r.err == nil {
			return r.assessment, nil
		}
		err = r.err
	case <-cctx.Done():
		err = fmt.Errorf("%w after %s", aegis_errors.ErrScorerTimeout, s.timeout)
	}

	logger.Warn("Predictive scorer failed; using deterministic fallback",
		zap.String("principalID", access.PrincipalID),
		zap.Error(err))

	assessment, fberr := s.fallback.Score(ctx, access)
	if fberr != nil {
		return assessment, fberr
	}
	assessment.Anomalies = append(assessment.Anomalies, AnomalyFallback)
	return assessment, nil
}
