package google_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/parser/google"
)

const postingJSON = `{"title":"Data Analyst","company":"Globex","description":"Dashboards","location":"Austin, TX","url":"https://globex.example/j/7","datePosted":"3 days ago"}`

func candidates(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}, "finishReason": "STOP"},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(candidates(postingJSON))
	}))
	defer server.Close()

	rec, err := google.New(server.Client()).Complete(context.Background(), "extract", domain.LLMOptions{
		Endpoint: server.URL + "/v1beta/models", Auth: "g-key",
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "g-key", gotKey)
	assert.Contains(t, gotBody, "contents")
	assert.Equal(t, "Globex", rec.Company)
	assert.Equal(t, "Google", rec.Source)
	require.NotNil(t, rec.DatePosted)
	require.NotNil(t, rec.DatePosted.Offset)
	assert.Equal(t, 3, rec.DatePosted.Offset.Days)
}

func TestComplete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := google.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
}

func TestComplete_BadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, err := google.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
	assert.Contains(t, err.Error(), "Google")
	assert.Contains(t, err.Error(), "400")
}

func TestComplete_InvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(candidates("Here is the posting you asked for."))
	}))
	defer server.Close()

	rec, err := google.New(server.Client()).Complete(context.Background(), "p", domain.LLMOptions{Endpoint: server.URL})

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrProviderRequestFailed)
	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Google", pe.Provider)
}

func TestComplete_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL + "/v1beta/models"
	server.Close()

	rec, err := google.New(nil).Complete(context.Background(), "p", domain.LLMOptions{
		Endpoint: endpoint, Auth: "SECRET-KEY-123",
	})

	assert.Nil(t, rec)
	require.ErrorIs(t, err, domain.ErrProviderRequestFailed)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
	assert.Contains(t, err.Error(), ":generateContent")
}
