// Package openai implements the OpenAI Responses API adapter.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobclip/internal/domain"
	"jobclip/internal/parser"
	"jobclip/internal/port"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/responses"
	defaultModel    = "o4-mini"
)

func init() {
	parser.RegisterProvider(domain.ProviderOpenAI, func(hc *http.Client) port.LLMClient {
		return New(hc)
	})
}

// Client implements port.LLMClient against the OpenAI Responses API.
type Client struct {
	http *http.Client
	now  func() time.Time
}

// New creates an OpenAI client.
func New(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc, now: time.Now}
}

type apiRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// apiResponse models the part of the Responses API reply we read.
type apiResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (c *Client) Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error) {
	endpoint := parser.Option(opts.Endpoint, defaultEndpoint)
	model := parser.Option(opts.Model, defaultModel)

	headers := map[string]string{}
	if opts.Auth != "" {
		headers["Authorization"] = "Bearer " + opts.Auth
	}

	body, err := parser.PostJSON(ctx, c.http, domain.ProviderOpenAI, endpoint, headers,
		apiRequest{Model: model, Input: prompt})
	if err != nil {
		return nil, err
	}

	text, err := messageText(body)
	if err != nil {
		return nil, domain.ProviderFailure(domain.ProviderOpenAI, err)
	}
	return parser.DecodePosting(domain.ProviderOpenAI, text, c.now())
}

func messageText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	for _, out := range resp.Output {
		if out.Type != "message" || len(out.Content) == 0 {
			continue
		}
		return out.Content[0].Text, nil
	}
	return "", fmt.Errorf("no message output in response")
}
