package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"jobclip/internal/domain"
)

const maxReplyBytes = 4 << 20

// PostJSON sends body as JSON to endpoint and returns the raw reply. Transport
// failures and non-2xx statuses are reported as provider failures.
func PostJSON(ctx context.Context, client *http.Client, provider domain.Provider, endpoint string, headers map[string]string, body any) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, domain.ProviderFailure(provider, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, domain.ProviderFailure(provider, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.ProviderFailure(provider, fmt.Errorf("calling %s API: %w", provider, redactURL(err)))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, domain.ProviderFailure(provider, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, StatusError(provider, resp.StatusCode, respBody, resp.Header.Get("Retry-After"))
	}
	return respBody, nil
}

// redactURL strips the query string and user info from the URL of a
// transport error. The Google key travels in the query.
func redactURL(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	target := uerr.URL
	if u, perr := url.Parse(uerr.URL); perr == nil {
		u.RawQuery = ""
		u.User = nil
		target = u.String()
	} else {
		target = "<unparseable url>"
	}
	return &url.Error{Op: uerr.Op, URL: target, Err: uerr.Err}
}

// Option returns value, or fallback when value is empty.
func Option(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
