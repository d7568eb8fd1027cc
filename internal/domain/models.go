package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tab is a browser tab as reported by the extension.
type Tab struct {
	ID       int    `json:"id"`
	WindowID int    `json:"window_id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Active   bool   `json:"active"`
}

// LLMOptions is the per-provider request configuration. Empty fields fall
// back to the adapter defaults.
type LLMOptions struct {
	Endpoint         string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	Model            string `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model"`
	Auth             string `json:"auth,omitempty" yaml:"auth,omitempty" mapstructure:"auth"`
	AnthropicVersion string `json:"anthropicVersion,omitempty" yaml:"anthropic_version,omitempty" mapstructure:"anthropic_version"`
}

// UserSettings is the persisted extension configuration.
type UserSettings struct {
	LLMProvider Provider   `json:"llmProvider" yaml:"llm_provider"`
	OpenAI      LLMOptions `json:"openaiOptions" yaml:"openai"`
	Anthropic   LLMOptions `json:"anthropicOptions" yaml:"anthropic"`
	Google      LLMOptions `json:"googleOptions" yaml:"google"`
	Ollama      LLMOptions `json:"ollamaOptions" yaml:"ollama"`
	BackendURL  string     `json:"backendUrl" yaml:"backend_url"`
}

// OptionsFor returns the options block for p. Unknown providers get the zero value.
func (s *UserSettings) OptionsFor(p Provider) LLMOptions {
	switch p {
	case ProviderOpenAI:
		return s.OpenAI
	case ProviderAnthropic:
		return s.Anthropic
	case ProviderGoogle:
		return s.Google
	case ProviderOllama:
		return s.Ollama
	default:
		return LLMOptions{}
	}
}

// RedactedAuth replaces auth tokens in settings returned to clients.
const RedactedAuth = "********"

// Redacted returns a copy with auth tokens masked.
func (s UserSettings) Redacted() UserSettings {
	mask := func(o LLMOptions) LLMOptions {
		if o.Auth != "" {
			o.Auth = RedactedAuth
		}
		return o
	}
	s.OpenAI = mask(s.OpenAI)
	s.Anthropic = mask(s.Anthropic)
	s.Google = mask(s.Google)
	s.Ollama = mask(s.Ollama)
	return s
}

// SavedPosting is a parsed posting persisted by the backend.
type SavedPosting struct {
	ID        uuid.UUID     `json:"id"`
	Record    PostingRecord `json:"posting"`
	TabURL    string        `json:"tab_url"`
	CreatedAt time.Time     `json:"created_at"`
}

// FileData is the payload of a relayed file. Content is a base64 data URL.
type FileData struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp,omitempty"`
	FileID    string `json:"fileId,omitempty"`
}

// FileMessage is the tagged message relayed between page and panel contexts.
type FileMessage struct {
	Action FileAction    `json:"action"`
	Target MessageTarget `json:"target"`
	TabID  int           `json:"tab_id,omitempty"`
	Data   FileData      `json:"data"`
}

// CapturedFile is a relayed file stored in object storage.
type CapturedFile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	Size        int64     `db:"size" json:"size"`
	SourceURL   string    `db:"source_url" json:"source_url"`
	S3Bucket    string    `db:"s3_bucket" json:"-"`
	S3Key       string    `db:"s3_key" json:"-"`
	CapturedAt  time.Time `db:"captured_at" json:"captured_at"`
}

// TabEvent is a tab lifecycle notification from the extension.
type TabEvent struct {
	Type TabEventType `json:"type"`
	Tab  Tab          `json:"tab"`
}
