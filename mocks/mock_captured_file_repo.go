package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockCapturedFileRepo is a mock implementation of port.CapturedFileRepository.
type MockCapturedFileRepo struct {
	mock.Mock
}

func (m *MockCapturedFileRepo) Create(ctx context.Context, file *domain.CapturedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockCapturedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapturedFile), args.Error(1)
}

func (m *MockCapturedFileRepo) List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CapturedFile), args.Int(1), args.Error(2)
}
