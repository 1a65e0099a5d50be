// api/errors/risk_errors.go
package errors

import "errors"

var (
	ErrScorerTimeout     = errors.New("risk scorer timed out")
	ErrScorerUnavailable = errors.New("risk scorer unavailable")
)
