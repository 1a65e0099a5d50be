// test/mock/grant.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cobaltsec/aegis/api/model"
)

// MockGrantStore is a mock implementation of grant.Store
type MockGrantStore struct {
	mock.Mock
}

func (m *MockGrantStore) Put(ctx context.Context, g model.Grant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGrantStore) Delete(ctx context.Context, principalID, permRef, objectRef string) error {
	args := m.Called(ctx, principalID, permRef, objectRef)
	return args.Error(0)
}

func (m *MockGrantStore) Find(ctx context.Context, principalID, permRef, objectRef string) (*model.Grant, error) {
	args := m.Called(ctx, principalID, permRef, objectRef)
	if g := args.Get(0); g != nil {
		return g.(*model.Grant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantStore) ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error) {
	args := m.Called(ctx, principalID)
	if g := args.Get(0); g != nil {
		return g.([]model.Grant), args.Error(1)
	}
	return nil, args.Error(1)
}
