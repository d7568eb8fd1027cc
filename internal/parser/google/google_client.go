// Package google implements the Gemini generateContent adapter.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobclip/internal/domain"
	"jobclip/internal/parser"
	"jobclip/internal/port"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel    = "gemini-2.5-flash"
)

func init() {
	parser.RegisterProvider(domain.ProviderGoogle, func(hc *http.Client) port.LLMClient {
		return New(hc)
	})
}

// Client implements port.LLMClient against the Gemini REST API.
type Client struct {
	http *http.Client
	now  func() time.Time
}

// New creates a Google client.
func New(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc, now: time.Now}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type apiRequest struct {
	Contents []content `json:"contents"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (c *Client) Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error) {
	target := buildURL(parser.Option(opts.Endpoint, defaultEndpoint),
		parser.Option(opts.Model, defaultModel), opts.Auth)
	reqBody := apiRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	body, err := parser.PostJSON(ctx, c.http, domain.ProviderGoogle, target, nil, reqBody)
	if err != nil {
		return nil, err
	}

	text, err := candidateText(body)
	if err != nil {
		return nil, domain.ProviderFailure(domain.ProviderGoogle, err)
	}
	return parser.DecodePosting(domain.ProviderGoogle, text, c.now())
}

// buildURL produces {endpoint}/{model}:generateContent?key={auth}.
func buildURL(endpoint, model, key string) string {
	u := strings.TrimRight(endpoint, "/") + "/" + url.PathEscape(model) + ":generateContent"
	if key != "" {
		u += "?key=" + url.QueryEscape(key)
	}
	return u
}

func candidateText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == "MAX_TOKENS" {
		return "", fmt.Errorf("output truncated (finishReason: MAX_TOKENS)")
	}
	if len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return cand.Content.Parts[0].Text, nil
}
