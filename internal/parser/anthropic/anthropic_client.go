// Package anthropic implements the Anthropic Messages API adapter.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobclip/internal/domain"
	"jobclip/internal/parser"
	"jobclip/internal/port"
)

const (
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-3"
	defaultVersion  = "2023-06-01"
	maxTokens       = 4096
)

func init() {
	parser.RegisterProvider(domain.ProviderAnthropic, func(hc *http.Client) port.LLMClient {
		return New(hc)
	})
}

// Client implements port.LLMClient against the Anthropic Messages API.
type Client struct {
	http *http.Client
	now  func() time.Time
}

// New creates an Anthropic client.
func New(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc, now: time.Now}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *Client) Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error) {
	endpoint := parser.Option(opts.Endpoint, defaultEndpoint)
	reqBody := apiRequest{
		Model:     parser.Option(opts.Model, defaultModel),
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         opts.Auth,
		"anthropic-version": parser.Option(opts.AnthropicVersion, defaultVersion),
	}

	body, err := parser.PostJSON(ctx, c.http, domain.ProviderAnthropic, endpoint, headers, reqBody)
	if err != nil {
		return nil, err
	}

	text, err := completionText(body)
	if err != nil {
		return nil, domain.ProviderFailure(domain.ProviderAnthropic, err)
	}
	return parser.DecodePosting(domain.ProviderAnthropic, text, c.now())
}

func completionText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if resp.StopReason == "max_tokens" {
		return "", fmt.Errorf("output truncated (stop_reason: max_tokens)")
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return b.String(), nil
}
