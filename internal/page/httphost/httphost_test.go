package httphost_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/page"
	"jobclip/internal/page/httphost"
)

func TestExecute_FetchesAndRunsScript(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Hiring</h1><p>Go engineers</p></body></html>`))
	}))
	defer server.Close()

	h := httphost.New(httphost.Config{UserAgent: "jobclip-test", HTTPClient: server.Client()})

	text, err := page.Extract(context.Background(), h, domain.Tab{ID: 1, URL: server.URL + "/job"}, page.BodyText)

	require.NoError(t, err)
	assert.Equal(t, "jobclip-test", gotUA)
	assert.Contains(t, text, "Hiring")
	assert.Contains(t, text, "Go engineers")
}

func TestExecute_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	h := httphost.New(httphost.Config{HTTPClient: server.Client()})

	_, err := page.Extract(context.Background(), h, domain.Tab{ID: 1, URL: server.URL}, page.BodyText)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "status 403")
}

func TestExecute_RejectsNonHTTPURL(t *testing.T) {
	h := httphost.New(httphost.Config{})

	_, err := page.Extract(context.Background(), h, domain.Tab{ID: 1, URL: "chrome://extensions"}, page.BodyText)

	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
}

func TestExecute_CancelledContextWhileWaiting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p>ok</p>`))
	}))
	defer server.Close()

	h := httphost.New(httphost.Config{ReqPerSec: 0.001, Burst: 1, HTTPClient: server.Client()})
	tab := domain.Tab{ID: 1, URL: server.URL}

	_, err := page.Extract(context.Background(), h, tab, page.BodyText)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = page.Extract(ctx, h, tab, page.BodyText)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
