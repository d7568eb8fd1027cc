// Package httphost loads a tab's page by fetching its URL over HTTP.
package httphost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobclip/internal/domain"
	"jobclip/internal/page"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxPageBytes caps how much of a response body is parsed.
const maxPageBytes = 8 << 20

// Config holds fetch settings.
type Config struct {
	UserAgent  string
	ReqPerSec  float64
	Burst      int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Host fetches pages with net/http, pacing requests per hostname.
type Host struct {
	client    *http.Client
	userAgent string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

// New creates an HTTP-backed page host.
func New(cfg Config) *Host {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	r := rate.Limit(cfg.ReqPerSec)
	if cfg.ReqPerSec <= 0 {
		r = rate.Inf
	}
	b := cfg.Burst
	if b <= 0 {
		b = 1
	}
	return &Host{
		client:    client,
		userAgent: ua,
		limiters:  make(map[string]*rate.Limiter),
		r:         r,
		b:         b,
	}
}

func (h *Host) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lim, ok := h.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(h.r, h.b)
	h.limiters[host] = lim
	return lim
}

// Execute fetches tab.URL and runs script against the response.
func (h *Host) Execute(ctx context.Context, tab domain.Tab, script page.Script) (any, error) {
	u, err := url.Parse(tab.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.NewParseError(domain.ErrCapabilityUnavailable,
			"cannot load this page over http", fmt.Errorf("url %q", tab.URL))
	}

	if err := h.limiterFor(u.Host).Wait(ctx); err != nil {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description", err)
	}

	p, err := h.fetch(ctx, tab.URL)
	if err != nil {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description", err)
	}
	return page.Run(p, script)
}

func (h *Host) fetch(ctx context.Context, rawURL string) (*page.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	return page.NewPage(resp.Request.URL.String(), string(body))
}
