// Package ollama implements the adapter for a local Ollama server.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"jobclip/internal/domain"
	"jobclip/internal/parser"
	"jobclip/internal/port"
)

const (
	defaultEndpoint = "http://localhost:11434/api/generate"
	defaultModel    = "deepseek-r1"
)

func init() {
	parser.RegisterProvider(domain.ProviderOllama, func(hc *http.Client) port.LLMClient {
		return New(hc)
	})
}

// Client implements port.LLMClient against Ollama's generate endpoint.
type Client struct {
	http *http.Client
	now  func() time.Time
}

// New creates an Ollama client.
func New(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc, now: time.Now}
}

type apiRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type apiResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete sends a non-streaming generate request. Auth is only sent when
// configured, for servers behind a proxy.
func (c *Client) Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error) {
	endpoint := parser.Option(opts.Endpoint, defaultEndpoint)
	reqBody := apiRequest{
		Model:  parser.Option(opts.Model, defaultModel),
		Prompt: prompt,
	}

	var headers map[string]string
	if opts.Auth != "" {
		headers = map[string]string{"Authorization": "Bearer " + opts.Auth}
	}

	body, err := parser.PostJSON(ctx, c.http, domain.ProviderOllama, endpoint, headers, reqBody)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.ProviderFailure(domain.ProviderOllama, fmt.Errorf("unmarshaling response: %w", err))
	}
	return parser.DecodePosting(domain.ProviderOllama, stripThinking(resp.Response), c.now())
}

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// stripThinking drops the reasoning block reasoning models prepend to their answer.
func stripThinking(s string) string {
	return thinkRe.ReplaceAllString(s, "")
}
