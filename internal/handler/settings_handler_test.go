package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/handler"
	"jobclip/mocks"
)

func TestSettingsHandler_Get(t *testing.T) {
	svc := new(mocks.MockSettingsService)
	h := handler.NewSettingsHandler(svc)

	svc.On("Get", mock.Anything).Return(&domain.UserSettings{
		LLMProvider: domain.ProviderOllama,
		Ollama:      domain.LLMOptions{Model: "deepseek-r1", Auth: domain.RedactedAuth},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/settings", http.NoBody)

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data domain.UserSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ProviderOllama, resp.Data.LLMProvider)
	assert.Equal(t, domain.RedactedAuth, resp.Data.Ollama.Auth)
}

func TestSettingsHandler_Update(t *testing.T) {
	svc := new(mocks.MockSettingsService)
	h := handler.NewSettingsHandler(svc)

	svc.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
		return s.LLMProvider == domain.ProviderGoogle && s.Google.Model == "gemini-2.5-flash"
	})).Return(&domain.UserSettings{LLMProvider: domain.ProviderGoogle}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/settings",
		strings.NewReader(`{"llmProvider":"google","googleOptions":{"model":"gemini-2.5-flash"}}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	svc := new(mocks.MockSettingsService)
	h := handler.NewSettingsHandler(svc)

	svc.On("Update", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidSettings)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"llmProvider":"mistral"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SETTINGS")
}
