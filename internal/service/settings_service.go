package service

import (
	"context"
	"fmt"
	"log"

	"jobclip/internal/domain"
	"jobclip/internal/port"
	"jobclip/internal/settings"
)

// SettingsService reads and updates the persisted user settings.
type SettingsService interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Update(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)
}

type settingsService struct {
	store port.SettingsWriter
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(store port.SettingsWriter) SettingsService {
	return &settingsService{store: store}
}

// Get returns the settings with auth tokens masked.
func (s *settingsService) Get(ctx context.Context) (*domain.UserSettings, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	redacted := current.Redacted()
	return &redacted, nil
}

// Update replaces the settings. A masked auth value keeps the stored token.
func (s *settingsService) Update(ctx context.Context, in *domain.UserSettings) (*domain.UserSettings, error) {
	if err := settings.Validate(in); err != nil {
		return nil, err
	}
	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	next := *in
	next.OpenAI.Auth = keepAuth(next.OpenAI.Auth, current.OpenAI.Auth)
	next.Anthropic.Auth = keepAuth(next.Anthropic.Auth, current.Anthropic.Auth)
	next.Google.Auth = keepAuth(next.Google.Auth, current.Google.Auth)
	next.Ollama.Auth = keepAuth(next.Ollama.Auth, current.Ollama.Auth)

	if err := s.store.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	log.Printf("settingsService.Update: llm provider set to %s", next.LLMProvider)

	redacted := next.Redacted()
	return &redacted, nil
}

func keepAuth(incoming, stored string) string {
	if incoming == domain.RedactedAuth {
		return stored
	}
	return incoming
}
