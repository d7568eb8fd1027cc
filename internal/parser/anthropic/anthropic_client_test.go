package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/parser/anthropic"
)

const postingJSON = `{"title":"SRE","company":"Initech","description":"Keep it up","location":"Remote","url":"https://initech.example/careers/42","internalId":42}`

func TestComplete_Success(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": postingJSON}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	rec, err := anthropic.New(server.Client()).Complete(context.Background(), "extract", domain.LLMOptions{
		Endpoint: server.URL, Auth: "key-1", Model: "claude-3-5-haiku",
	})

	require.NoError(t, err)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-3-5-haiku", gotBody["model"])
	assert.Equal(t, "SRE", rec.Title)
	require.NotNil(t, rec.InternalID)
	assert.Equal(t, "42", *rec.InternalID)
	assert.Equal(t, "Anthropic", rec.Source)
	assert.Nil(t, rec.DatePosted)
}

func TestComplete_CustomVersion(t *testing.T) {
	var gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": postingJSON}},
		})
	}))
	defer server.Close()

	_, err := anthropic.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{
		Endpoint: server.URL, AnthropicVersion: "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", gotVersion)
}

func TestComplete_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := anthropic.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Anthropic", pe.Provider)
}

func TestComplete_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": `{"title":`}},
			"stop_reason": "max_tokens",
		})
	}))
	defer server.Close()

	_, err := anthropic.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestComplete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	_, err := anthropic.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
}

func TestComplete_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": "I could not find a job posting on this page."}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	rec, err := anthropic.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Anthropic", pe.Provider)
}
