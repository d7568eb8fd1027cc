package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockPostingRepo is a mock implementation of port.PostingRepository.
type MockPostingRepo struct {
	mock.Mock
}

func (m *MockPostingRepo) Create(ctx context.Context, posting *domain.SavedPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockPostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPosting), args.Error(1)
}

func (m *MockPostingRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SavedPosting), args.Int(1), args.Error(2)
}

func (m *MockPostingRepo) ListAll(ctx context.Context) ([]domain.SavedPosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedPosting), args.Error(1)
}
