package model

// CheckResult is the engine's answer. Allowed is the static verdict ANDed
// with the risk verdict; Cached marks results served from the decision cache.
type CheckResult struct {
	Allowed         bool     `json:"allowed"`
	RiskScore       float64  `json:"risk_score"`
	Anomalies       []string `json:"anomalies"`
	Recommendations []string `json:"recommendations"`
	Cached          bool     `json:"cached"`
	Reason          string   `json:"reason,omitempty"`
}
