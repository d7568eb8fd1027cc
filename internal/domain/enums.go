package domain

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderOllama    Provider = "ollama"
	ProviderUnknown   Provider = "unknown"
)

// KnownProviders lists the providers that have a client adapter.
var KnownProviders = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderOllama}

// ParseProvider maps a stored value to a Provider; anything unrecognised
// becomes ProviderUnknown.
func ParseProvider(s string) Provider {
	p := Provider(s)
	if p.Known() {
		return p
	}
	return ProviderUnknown
}

// Known reports whether p has a client adapter.
func (p Provider) Known() bool {
	for _, k := range KnownProviders {
		if p == k {
			return true
		}
	}
	return false
}

// DisplayName is the human-readable provider name used in error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGoogle:
		return "Google"
	case ProviderOllama:
		return "Ollama"
	default:
		return "Unknown"
	}
}

// FileAction is the verb of a relayed file message.
type FileAction string

const (
	FileActionUpload FileAction = "upload"
	FileActionSave   FileAction = "save"
	FileActionGet    FileAction = "get"
)

// MessageTarget is the context a relayed message is addressed to.
type MessageTarget string

const (
	TargetSidePanel  MessageTarget = "sidepanel"
	TargetBackground MessageTarget = "background"
)

// TabEventType is the kind of tab notification sent by the extension.
type TabEventType string

const (
	TabActivated TabEventType = "activated"
	TabUpdated   TabEventType = "updated"
	TabRemoved   TabEventType = "removed"
)

// ExportFormat selects the posting export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)
