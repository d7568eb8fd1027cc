package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobclip/internal/domain"
)

// MockPostingParser is a mock implementation of port.PostingParser.
type MockPostingParser struct {
	mock.Mock
}

func (m *MockPostingParser) Parse(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error) {
	args := m.Called(ctx, tab)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRecord), args.Error(1)
}

// MockLLMClient is a mock implementation of port.LLMClient.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error) {
	args := m.Called(ctx, prompt, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRecord), args.Error(1)
}

// MockPostingDispatcher is a mock implementation of port.PostingDispatcher.
type MockPostingDispatcher struct {
	mock.Mock
}

func (m *MockPostingDispatcher) Parse(ctx context.Context) (*domain.PostingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRecord), args.Error(1)
}

func (m *MockPostingDispatcher) ParseTab(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error) {
	args := m.Called(ctx, tab)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingRecord), args.Error(1)
}
