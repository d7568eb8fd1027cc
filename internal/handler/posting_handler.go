package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobclip/internal/domain"
	"jobclip/internal/export"
	"jobclip/internal/service"
)

// PostingHandler handles posting capture and retrieval endpoints.
type PostingHandler struct {
	postingService service.PostingService
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingService service.PostingService) *PostingHandler {
	return &PostingHandler{postingService: postingService}
}

// Parse handles POST /api/v1/postings/parse
// @Summary Capture a job posting
// @Description Parse the active tab (or tab_id) into a posting and save it
// @Tags postings
// @Accept json
// @Produce json
// @Param body body ParseRequest false "Optional tab to parse"
// @Success 201 {object} Response{data=domain.SavedPosting} "Posting captured"
// @Failure 409 {object} ErrorResponseBody "No active tab"
// @Failure 422 {object} ErrorResponseBody "Page could not be parsed"
// @Failure 502 {object} ErrorResponseBody "LLM request failed"
// @Security BearerAuth
// @Router /postings/parse [post]
func (h *PostingHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	saved, err := h.postingService.Capture(c.Request.Context(), req.TabID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// List handles GET /api/v1/postings
// @Summary List saved postings
// @Tags postings
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.SavedPosting}
// @Security BearerAuth
// @Router /postings [get]
func (h *PostingHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	postings, total, err := h.postingService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, postings, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/postings/:id
// @Summary Get a saved posting
// @Tags postings
// @Produce json
// @Param id path string true "Posting ID"
// @Success 200 {object} Response{data=domain.SavedPosting}
// @Failure 404 {object} ErrorResponseBody "Posting not found"
// @Security BearerAuth
// @Router /postings/{id} [get]
func (h *PostingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid posting ID")
		return
	}

	posting, err := h.postingService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, posting)
}

// Export handles GET /api/v1/postings/export
// @Summary Export saved postings
// @Description Download every saved posting as CSV or XLSX
// @Tags postings
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /postings/export [get]
func (h *PostingHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportCSV)))

	var buf bytes.Buffer
	if err := h.postingService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	contentType, ext := export.ContentType(format)
	filename := fmt.Sprintf("postings_%s.%s", time.Now().UTC().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
