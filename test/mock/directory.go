// test/mock/directory.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cobaltsec/aegis/api/model"
)

// MockDirectory is a mock principal directory usable wherever a
// dao.Directory, engine.Directory or partition.Directory is expected.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Principal), args.Error(1)
	}
	return nil, args.Error(1)
}
