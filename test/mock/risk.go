// test/mock/risk.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cobaltsec/aegis/api/risk"
)

// MockScorer is a mock implementation of risk.Scorer
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, access risk.AccessContext) (risk.Assessment, error) {
	args := m.Called(ctx, access)
	return args.Get(0).(risk.Assessment), args.Error(1)
}
