// Package playwrighthost renders a tab's page in headless Chromium and runs
// scripts against the rendered DOM.
package playwrighthost

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"jobclip/internal/domain"
	"jobclip/internal/page"
)

// Config holds browser settings.
type Config struct {
	Headless  bool
	Timeout   time.Duration
	UserAgent string
}

// Host drives a lazily started Chromium instance.
type Host struct {
	cfg Config

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// New creates a Host; the browser starts on first use.
func New(cfg Config) *Host {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Host{cfg: cfg}
}

func (h *Host) ensureBrowser() (playwright.Browser, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser != nil && h.browser.IsConnected() {
		return h.browser, nil
	}

	if h.pw == nil {
		pw, err := playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("starting playwright: %w", err)
		}
		h.pw = pw
	}

	browser, err := h.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(h.cfg.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("launching chromium: %w", err)
	}
	h.browser = browser
	log.Printf("playwrighthost: chromium started (headless=%v)", h.cfg.Headless)
	return browser, nil
}

// Execute renders tab.URL and runs script against the rendered DOM.
func (h *Host) Execute(ctx context.Context, tab domain.Tab, script page.Script) (any, error) {
	if !strings.HasPrefix(tab.URL, "http://") && !strings.HasPrefix(tab.URL, "https://") {
		return nil, domain.NewParseError(domain.ErrCapabilityUnavailable,
			"cannot render this page", fmt.Errorf("url %q", tab.URL))
	}

	browser, err := h.ensureBrowser()
	if err != nil {
		return nil, domain.NewParseError(domain.ErrCapabilityUnavailable,
			"browser automation is not available", err)
	}

	p, err := h.render(ctx, browser, tab.URL)
	if err != nil {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description", err)
	}
	return page.Run(p, script)
}

func (h *Host) render(ctx context.Context, browser playwright.Browser, url string) (*page.Page, error) {
	opts := playwright.BrowserNewPageOptions{}
	if h.cfg.UserAgent != "" {
		opts.UserAgent = playwright.String(h.cfg.UserAgent)
	}
	pg, err := browser.NewPage(opts)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer func() { _ = pg.Close() }()

	timeout := h.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if _, err := pg.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}

	html, err := pg.Content()
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	text, err := pg.Locator("body").InnerText()
	if err != nil {
		log.Printf("playwrighthost.render: body text unavailable for %s: %v", url, err)
		text = ""
	}

	p, err := page.NewPage(pg.URL(), html)
	if err != nil {
		return nil, err
	}
	p.Text = text
	return p, nil
}

// Close shuts the browser and the driver down.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.browser != nil {
		if err := h.browser.Close(); err != nil {
			log.Printf("playwrighthost.Close: closing browser: %v", err)
		}
		h.browser = nil
	}
	if h.pw != nil {
		if err := h.pw.Stop(); err != nil {
			return fmt.Errorf("stopping playwright: %w", err)
		}
		h.pw = nil
	}
	return nil
}
