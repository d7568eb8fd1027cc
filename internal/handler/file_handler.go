package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobclip/internal/domain"
	"jobclip/internal/service"
)

// FileHandler handles relayed file and side panel endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Relay handles POST /api/v1/relay/messages
// @Summary Relay a captured file to the side panel
// @Description Accepts upload messages addressed to the side panel while it is open
// @Tags files
// @Accept json
// @Produce json
// @Param body body domain.FileMessage true "Relay message"
// @Success 201 {object} Response{data=domain.CapturedFile} "File stored"
// @Failure 400 {object} ErrorResponseBody "Unsupported or malformed message"
// @Failure 409 {object} ErrorResponseBody "Side panel closed"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /relay/messages [post]
func (h *FileHandler) Relay(c *gin.Context) {
	var msg domain.FileMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	file, err := h.fileService.Relay(c.Request.Context(), msg)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, file)
}

// PanelState handles GET /api/v1/panel/state
// @Summary Get side panel state
// @Tags files
// @Produce json
// @Success 200 {object} Response{data=PanelStateResponse}
// @Security BearerAuth
// @Router /panel/state [get]
func (h *FileHandler) PanelState(c *gin.Context) {
	RespondOK(c, PanelStateResponse{Open: h.fileService.PanelOpen()})
}

// SetPanelState handles PUT /api/v1/panel/state
// @Summary Set side panel state
// @Tags files
// @Accept json
// @Produce json
// @Param body body PanelStateRequest true "Panel state"
// @Success 200 {object} Response{data=PanelStateResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /panel/state [put]
func (h *FileHandler) SetPanelState(c *gin.Context) {
	var req PanelStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	h.fileService.SetPanelOpen(*req.Open)
	RespondOK(c, PanelStateResponse{Open: *req.Open})
}

// List handles GET /api/v1/files
// @Summary List captured files
// @Tags files
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.CapturedFile}
// @Security BearerAuth
// @Router /files [get]
func (h *FileHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	files, total, err := h.fileService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/files/:id
// @Summary Get a captured file with a download URL
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Security BearerAuth
// @Router /files/{id} [get]
func (h *FileHandler) GetByID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	file, err := h.fileService.GetByID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), fileID)
	if err != nil {
		log.Printf("FileHandler.GetByID: presign failed for %s: %v", fileID, err)
		url = ""
	}
	RespondOK(c, DownloadURLResponse{File: file, URL: url})
}
