// Package llm implements the site-agnostic parser: it reads the visible text
// of a tab and asks the configured LLM provider to structure it.
package llm

import (
	"context"
	"log"
	"net/http"
	"sync"

	"jobclip/internal/domain"
	"jobclip/internal/page"
	"jobclip/internal/parser"

	// Provider adapters register themselves with the parser registry.
	_ "jobclip/internal/parser/anthropic"
	_ "jobclip/internal/parser/google"
	_ "jobclip/internal/parser/ollama"
	_ "jobclip/internal/parser/openai"
)

// Parser implements port.PostingParser on top of an LLM provider.
type Parser struct {
	host page.ScriptHost
	http *http.Client

	mu       sync.RWMutex
	provider domain.Provider
	opts     domain.LLMOptions
}

// NewParser creates a Parser. The provider is not validated here; an
// unusable provider surfaces as a failure from Parse.
func NewParser(host page.ScriptHost, httpClient *http.Client, provider domain.Provider, opts domain.LLMOptions) *Parser {
	return &Parser{
		host:     host,
		http:     httpClient,
		provider: provider,
		opts:     opts,
	}
}

// SetProvider switches the provider and its options. The unknown provider is
// rejected and leaves the parser unchanged.
func (p *Parser) SetProvider(provider domain.Provider, opts domain.LLMOptions) error {
	if !provider.Known() {
		return domain.NewParseError(domain.ErrInvalidConfiguration, "Unknown LLM provider", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.provider = provider
	p.opts = opts
	return nil
}

// Provider returns the current provider.
func (p *Parser) Provider() domain.Provider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.provider
}

// Parse sends the tab's visible text to the current provider.
func (p *Parser) Parse(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error) {
	if tab == nil {
		return nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.", nil)
	}
	if tab.URL == "" {
		return nil, domain.NewParseError(domain.ErrNoURL, "Invalid URL.", nil)
	}

	text, err := page.Extract(ctx, p.host, *tab, page.BodyText)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	provider, opts := p.provider, p.opts
	p.mu.RUnlock()

	prompt := parser.BuildPostingPrompt(tab.URL, text)
	rec, err := parser.NewClient(provider, p.http).Complete(ctx, prompt, opts)
	if err != nil {
		log.Printf("llm.Parser.Parse: %s request for tab %d failed: %v", provider, tab.ID, err)
		return nil, &domain.ParseError{
			Kind:     domain.ErrLLMRequestFailed,
			Message:  "LLM API request failed",
			Provider: provider.DisplayName(),
			Err:      err,
		}
	}
	return rec, nil
}
