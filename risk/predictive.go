// api/risk/predictive.go
package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PredictiveScorer calls an external model service over HTTP. The request
// body is the full AccessContext including recent history; the service
// answers with a score and optional annotations. Timeouts and fallback are
// the FallbackScorer's job.
type PredictiveScorer struct {
	url    string
	client *http.Client
}

func NewPredictiveScorer(url string) *PredictiveScorer {
	return &PredictiveScorer{url: url, client: &http.Client{}}
}

type predictiveResponse struct {
	RiskScore       float64  `json:"risk_score"`
	Anomalies       []string `json:"anomalies"`
	Recommendations []string `json:"recommendations"`
}

func (s *PredictiveScorer) Score(ctx context.Context, access AccessContext) (Assessment, error) {
	payload, err := json.Marshal(access)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to marshal access context: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to build scorer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Assessment{}, fmt.Errorf("scorer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Assessment{}, fmt.Errorf("scorer returned status %d", resp.StatusCode)
	}

	var out predictiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Assessment{}, fmt.Errorf("failed to decode scorer response: %w", err)
	}

	return Assessment{
		Score:           clamp(out.RiskScore),
		Anomalies:       out.Anomalies,
		Recommendations: out.Recommendations,
	}, nil
}
