// Package settings persists the user's extension settings (LLM provider and
// per-provider options) as a YAML file.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"jobclip/internal/domain"
)

// Defaults applied to keys missing from the settings file.
var defaults = map[string]string{
	"llm_provider":                string(domain.ProviderOpenAI),
	"openai.endpoint":             "https://api.openai.com/v1/responses",
	"openai.model":                "o4-mini",
	"anthropic.endpoint":          "https://api.anthropic.com/v1/messages",
	"anthropic.model":             "claude-3",
	"anthropic.anthropic_version": "2023-06-01",
	"google.endpoint":             "https://generativelanguage.googleapis.com/v1beta/models",
	"google.model":                "gemini-2.0-flash",
	"ollama.endpoint":             "http://localhost:11434/api/generate",
	"ollama.model":                "gemma3:12b",
	"backend_url":                 "",
}

// FileStore implements port.SettingsWriter on a YAML file.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a store backed by path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the settings file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file. Each call returns a fresh value.
func (s *FileStore) Load(_ context.Context) (*domain.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := viper.New()
	v.SetConfigType("yaml")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if _, err := os.Stat(s.path); err == nil {
		v.SetConfigFile(s.path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", s.path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading settings %s: %w", s.path, err)
	}

	return &domain.UserSettings{
		LLMProvider: domain.ParseProvider(strings.ToLower(strings.TrimSpace(v.GetString("llm_provider")))),
		OpenAI:      options(v, "openai"),
		Anthropic:   options(v, "anthropic"),
		Google:      options(v, "google"),
		Ollama:      options(v, "ollama"),
		BackendURL:  v.GetString("backend_url"),
	}, nil
}

func options(v *viper.Viper, section string) domain.LLMOptions {
	return domain.LLMOptions{
		Endpoint:         v.GetString(section + ".endpoint"),
		Model:            v.GetString(section + ".model"),
		Auth:             v.GetString(section + ".auth"),
		AnthropicVersion: v.GetString(section + ".anthropic_version"),
	}
}

// Validate checks settings before they are written.
func Validate(settings *domain.UserSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidSettings)
	}
	if !settings.LLMProvider.Known() {
		return fmt.Errorf("%w: unknown llm provider %q", domain.ErrInvalidSettings, settings.LLMProvider)
	}
	return nil
}

// Save writes settings atomically, keeping the previous file as .bak.
func (s *FileStore) Save(_ context.Context, settings *domain.UserSettings) error {
	if err := Validate(settings); err != nil {
		return err
	}

	b, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	tmp := s.path + ".tmp"
	bak := s.path + ".bak"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	_ = os.Remove(bak)
	_ = os.Rename(s.path, bak)

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}
