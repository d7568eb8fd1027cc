package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobclip/internal/domain"
	"jobclip/internal/service"
)

const maxSnapshotBytes = 8 << 20

// TabHandler receives tab notifications and page snapshots from the extension.
type TabHandler struct {
	tabService service.TabService
}

// NewTabHandler creates a new TabHandler.
func NewTabHandler(tabService service.TabService) *TabHandler {
	return &TabHandler{tabService: tabService}
}

// Event handles POST /api/v1/tabs/events
// @Summary Report a tab event
// @Tags tabs
// @Accept json
// @Produce json
// @Param body body domain.TabEvent true "Tab event"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Invalid event"
// @Security BearerAuth
// @Router /tabs/events [post]
func (h *TabHandler) Event(c *gin.Context) {
	var event domain.TabEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.tabService.HandleEvent(c.Request.Context(), event); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"type": event.Type, "tab_id": event.Tab.ID})
}

// Snapshot handles PUT /api/v1/tabs/:id/snapshot
// @Summary Upload the HTML of a tab
// @Tags tabs
// @Accept text/html
// @Produce json
// @Param id path int true "Tab ID"
// @Param X-Page-URL header string true "URL of the page"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Invalid tab ID or missing URL"
// @Failure 413 {object} ErrorResponseBody "Snapshot too large"
// @Security BearerAuth
// @Router /tabs/{id}/snapshot [put]
func (h *TabHandler) Snapshot(c *gin.Context) {
	tabID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid tab ID")
		return
	}
	pageURL := c.GetHeader("X-Page-URL")
	if pageURL == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_URL", "X-Page-URL header is required")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "reading snapshot body failed")
		return
	}
	if len(body) > maxSnapshotBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "SNAPSHOT_TOO_LARGE", "snapshot exceeds 8MB")
		return
	}

	if err := h.tabService.StoreSnapshot(c.Request.Context(), tabID, pageURL, string(body)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"tab_id": tabID, "bytes": len(body)})
}
