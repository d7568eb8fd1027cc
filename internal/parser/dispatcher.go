package parser

import (
	"context"
	"log"

	"jobclip/internal/domain"
	"jobclip/internal/port"
)

// SiteRoute binds a site-specific scraper to the URLs it understands.
type SiteRoute struct {
	Name   string
	Match  func(url string) bool
	Parser port.PostingParser
}

// LLMFactory builds the LLM-based parser for a settings snapshot.
type LLMFactory func(provider domain.Provider, opts domain.LLMOptions) port.PostingParser

// Dispatcher picks the parser for the active tab: the first site route whose
// predicate matches the tab URL, otherwise the LLM parser configured in the
// user settings.
type Dispatcher struct {
	tabs     port.TabAccessor
	settings port.SettingsStore
	newLLM   LLMFactory
	routes   []SiteRoute
}

// NewDispatcher creates a Dispatcher. Routes are tried in order.
func NewDispatcher(tabs port.TabAccessor, settings port.SettingsStore, newLLM LLMFactory, routes ...SiteRoute) *Dispatcher {
	return &Dispatcher{
		tabs:     tabs,
		settings: settings,
		newLLM:   newLLM,
		routes:   routes,
	}
}

// Register adds a site route; it is tried after the existing routes and
// before the LLM fallback.
func (d *Dispatcher) Register(route SiteRoute) {
	d.routes = append(d.routes, route)
}

// Parse extracts a posting from the currently active tab.
func (d *Dispatcher) Parse(ctx context.Context) (*domain.PostingRecord, error) {
	tab, err := d.tabs.ActiveTab(ctx)
	if err != nil {
		return nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.", err)
	}
	return d.ParseTab(ctx, tab)
}

// ParseTab extracts a posting from the given tab. Failures from the chosen
// parser are returned unchanged.
func (d *Dispatcher) ParseTab(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error) {
	if tab == nil {
		return nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.", nil)
	}
	if tab.URL == "" {
		return nil, domain.NewParseError(domain.ErrNoURL, "Invalid URL.", nil)
	}

	for _, r := range d.routes {
		if r.Match(tab.URL) {
			log.Printf("parser.Dispatcher: tab %d routed to %s scraper", tab.ID, r.Name)
			return r.Parser.Parse(ctx, tab)
		}
	}

	s, err := d.settings.Load(ctx)
	if err != nil {
		return nil, domain.NewParseError(domain.ErrInvalidConfiguration, "reading settings", err)
	}
	provider := s.LLMProvider
	log.Printf("parser.Dispatcher: tab %d routed to llm parser (%s)", tab.ID, provider)
	return d.newLLM(provider, s.OptionsFor(provider)).Parse(ctx, tab)
}
