package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/service"
	"jobclip/mocks"
)

func storedSettings() *domain.UserSettings {
	return &domain.UserSettings{
		LLMProvider: domain.ProviderAnthropic,
		OpenAI:      domain.LLMOptions{Model: "o4-mini", Auth: "sk-openai"},
		Anthropic:   domain.LLMOptions{Model: "claude-3", Auth: "sk-ant"},
	}
}

func TestSettingsService_Get_Redacts(t *testing.T) {
	store := new(mocks.MockSettingsStore)
	svc := service.NewSettingsService(store)

	store.On("Load", mock.Anything).Return(storedSettings(), nil)

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RedactedAuth, got.OpenAI.Auth)
	assert.Equal(t, domain.RedactedAuth, got.Anthropic.Auth)
	assert.Empty(t, got.Google.Auth)
	assert.Equal(t, domain.ProviderAnthropic, got.LLMProvider)
}

func TestSettingsService_Update_KeepsMaskedTokens(t *testing.T) {
	store := new(mocks.MockSettingsStore)
	svc := service.NewSettingsService(store)

	store.On("Load", mock.Anything).Return(storedSettings(), nil)
	var saved *domain.UserSettings
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.UserSettings")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.UserSettings) }).
		Return(nil)

	in := &domain.UserSettings{
		LLMProvider: domain.ProviderOpenAI,
		OpenAI:      domain.LLMOptions{Model: "gpt-4.1", Auth: domain.RedactedAuth},
		Anthropic:   domain.LLMOptions{Auth: "sk-new"},
	}
	got, err := svc.Update(context.Background(), in)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "sk-openai", saved.OpenAI.Auth)
	assert.Equal(t, "sk-new", saved.Anthropic.Auth)
	assert.Equal(t, "gpt-4.1", saved.OpenAI.Model)
	assert.Equal(t, domain.RedactedAuth, got.OpenAI.Auth)
}

func TestSettingsService_Update_RejectsUnknownProvider(t *testing.T) {
	store := new(mocks.MockSettingsStore)
	svc := service.NewSettingsService(store)

	_, err := svc.Update(context.Background(), &domain.UserSettings{LLMProvider: domain.ProviderUnknown})

	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
