package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Relay(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapturedFile), args.Error(1)
}

func (m *MockFileService) SetPanelOpen(open bool) {
	m.Called(open)
}

func (m *MockFileService) PanelOpen() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockFileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapturedFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CapturedFile), args.Int(1), args.Error(2)
}

func (m *MockFileService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockFileRelay is a mock implementation of service.FileRelay.
type MockFileRelay struct {
	mock.Mock
}

func (m *MockFileRelay) Handle(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapturedFile), args.Error(1)
}

func (m *MockFileRelay) SetPanelOpen(open bool) {
	m.Called(open)
}

func (m *MockFileRelay) PanelOpen() bool {
	args := m.Called()
	return args.Bool(0)
}
