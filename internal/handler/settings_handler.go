package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobclip/internal/domain"
	"jobclip/internal/service"
)

// SettingsHandler serves the options page.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
// @Summary Get user settings
// @Description Auth tokens are masked
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.UserSettings}
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, s)
}

// Update handles PUT /api/v1/settings
// @Summary Replace user settings
// @Description A masked auth value keeps the stored token
// @Tags settings
// @Accept json
// @Produce json
// @Param body body domain.UserSettings true "Settings"
// @Success 200 {object} Response{data=domain.UserSettings}
// @Failure 400 {object} ErrorResponseBody "Invalid settings"
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req domain.UserSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	s, err := h.settingsService.Update(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, s)
}
