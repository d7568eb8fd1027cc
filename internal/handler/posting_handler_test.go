package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/handler"
	"jobclip/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func savedPosting() *domain.SavedPosting {
	return &domain.SavedPosting{
		ID: uuid.New(),
		Record: domain.PostingRecord{
			Title:       "Backend Engineer",
			Company:     "Acme",
			Description: "Build things.",
			Location:    "Berlin",
			URL:         "https://www.linkedin.com/jobs/view/4012345678/",
			Source:      "LinkedIn",
		},
		TabURL:    "https://www.linkedin.com/jobs/view/4012345678/",
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostingHandler_Parse_ActiveTab(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("Capture", mock.Anything, (*int)(nil)).Return(savedPosting(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/postings/parse", http.NoBody)

	h.Parse(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestPostingHandler_Parse_ExplicitTab(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("Capture", mock.Anything, mock.MatchedBy(func(id *int) bool { return id != nil && *id == 7 })).
		Return(savedPosting(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/postings/parse", strings.NewReader(`{"tab_id":7}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Parse(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestPostingHandler_Parse_TypedFailure(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("Capture", mock.Anything, (*int)(nil)).
		Return(nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.", nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/postings/parse", http.NoBody)

	h.Parse(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NO_ACTIVE_TAB", resp.Error.Code)
	assert.Equal(t, "No active tab found.", resp.Error.Message)
}

func TestPostingHandler_Parse_BadBody(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/postings/parse", strings.NewReader(`{"tab_id":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestPostingHandler_List(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("List", mock.Anything, 10, 5).Return([]domain.SavedPosting{*savedPosting()}, 11, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings?offset=10&limit=5", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestPostingHandler_GetByID(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	p := savedPosting()
	svc.On("Get", mock.Anything, p.ID).Return(p, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings/"+p.ID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: p.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Engineer")
}

func TestPostingHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewPostingHandler(new(mocks.MockPostingService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings/nope", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostingHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings/"+id.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostingHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("Export", mock.Anything, domain.ExportCSV, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "Title\nBackend Engineer\n")
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings/export", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"postings_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, "Title\nBackend Engineer\n", w.Body.String())
}

func TestPostingHandler_Export_UnsupportedFormat(t *testing.T) {
	svc := new(mocks.MockPostingService)
	h := handler.NewPostingHandler(svc)

	svc.On("Export", mock.Anything, domain.ExportFormat("pdf"), mock.Anything).Return(domain.ErrUnsupportedFormat)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/postings/export?format=pdf", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.False(t, bytes.Contains(w.Body.Bytes(), []byte("Title")))
}
