package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockPostingService is a mock implementation of service.PostingService.
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Capture(ctx context.Context, tabID *int) (*domain.SavedPosting, error) {
	args := m.Called(ctx, tabID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPosting), args.Error(1)
}

func (m *MockPostingService) Get(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedPosting), args.Error(1)
}

func (m *MockPostingService) List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SavedPosting), args.Int(1), args.Error(2)
}

func (m *MockPostingService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (*domain.UserSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

// MockTabService is a mock implementation of service.TabService.
type MockTabService struct {
	mock.Mock
}

func (m *MockTabService) HandleEvent(ctx context.Context, event domain.TabEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTabService) StoreSnapshot(ctx context.Context, tabID int, url, html string) error {
	args := m.Called(ctx, tabID, url, html)
	return args.Error(0)
}
