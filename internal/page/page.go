// Package page is the bridge between the server and a browser tab's DOM.
// Scrapers never read a page directly: they hand a Script to a ScriptHost,
// which runs it against the tab's page context and returns its result.
package page

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobclip/internal/domain"
)

// Page is the page context a Script runs in.
type Page struct {
	// URL is the location of the document as loaded.
	URL string
	Doc *goquery.Document
	// Text is the rendered visible text when the host can provide it.
	Text string
}

// Script is a function evaluated in a tab's page context.
type Script func(p *Page) (any, error)

// ScriptHost executes scripts in the context of a browser tab.
type ScriptHost interface {
	Execute(ctx context.Context, tab domain.Tab, script Script) (any, error)
}

// Extract runs fn in tab through host and returns its typed result.
func Extract[T any](ctx context.Context, host ScriptHost, tab domain.Tab, fn func(*Page) (T, error)) (T, error) {
	var zero T
	if host == nil {
		return zero, domain.NewParseError(domain.ErrCapabilityUnavailable,
			"scripting API is not available", nil)
	}

	result, err := host.Execute(ctx, tab, func(p *Page) (any, error) {
		return fn(p)
	})
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description", nil)
	}

	v, ok := result.(T)
	if !ok {
		return zero, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description",
			fmt.Errorf("unexpected script result %T", result))
	}
	return v, nil
}

// Run is the host-side helper shared by ScriptHost implementations: it
// guards against a missing page and converts a script panic into a failure.
func Run(p *Page, script Script) (result any, err error) {
	if p == nil || p.Doc == nil {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description",
			fmt.Errorf("no page loaded"))
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description",
				fmt.Errorf("script panicked: %v", r))
		}
	}()
	return script(p)
}

var (
	blankRunRe = regexp.MustCompile(`[ \t\f\r\x{00a0}]+`)
	newlineRe  = regexp.MustCompile(`\n\s*\n\s*(\n\s*)+`)
)

// BodyText returns the visible text of the page body.
func BodyText(p *Page) (string, error) {
	if p.Text != "" {
		return p.Text, nil
	}
	body := p.Doc.Find("body").First()
	if body.Length() == 0 {
		body = p.Doc.Selection
	}
	body = body.Clone()
	body.Find("script, style, noscript, template").Remove()

	text := blankRunRe.ReplaceAllString(body.Text(), " ")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	text = newlineRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}

// NewPage parses html into a Page located at url.
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page html: %w", err)
	}
	return &Page{URL: url, Doc: doc}, nil
}
