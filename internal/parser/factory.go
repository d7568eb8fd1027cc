package parser

import (
	"context"
	"net/http"
	"sync"

	"jobclip/internal/domain"
	"jobclip/internal/port"
)

// ProviderFactory builds the client adapter of one provider.
type ProviderFactory func(httpClient *http.Client) port.LLMClient

// registry of provider adapters, populated by init() in each adapter package.
var (
	providersMu sync.RWMutex
	providers   = map[domain.Provider]ProviderFactory{}
)

// RegisterProvider registers the adapter factory for a provider. The unknown
// provider cannot be registered.
func RegisterProvider(p domain.Provider, factory ProviderFactory) {
	if p == domain.ProviderUnknown {
		return
	}
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[p] = factory
}

// NewClient returns the adapter for p. Providers without an adapter get a
// client that always fails with ErrUnsupportedProvider.
func NewClient(p domain.Provider, httpClient *http.Client) port.LLMClient {
	providersMu.RLock()
	factory, ok := providers[p]
	providersMu.RUnlock()
	if !ok {
		return unsupportedClient{provider: p}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return factory(httpClient)
}

type unsupportedClient struct {
	provider domain.Provider
}

func (u unsupportedClient) Complete(context.Context, string, domain.LLMOptions) (*domain.PostingRecord, error) {
	return nil, &domain.ParseError{
		Kind:     domain.ErrUnsupportedProvider,
		Message:  "Unsupported LLM provider",
		Provider: string(u.provider),
	}
}
