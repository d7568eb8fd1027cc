package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockTabAccessor is a mock implementation of port.TabAccessor.
type MockTabAccessor struct {
	mock.Mock
}

func (m *MockTabAccessor) ActiveTab(ctx context.Context) (*domain.Tab, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tab), args.Error(1)
}

// MockTabLookup is a mock implementation of port.TabLookup.
type MockTabLookup struct {
	mock.Mock
}

func (m *MockTabLookup) Get(tabID int) (domain.Tab, bool) {
	args := m.Called(tabID)
	return args.Get(0).(domain.Tab), args.Bool(1)
}
