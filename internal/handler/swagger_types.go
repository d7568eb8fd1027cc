package handler

import (
	"jobclip/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ParseRequest represents the capture request body. Without tab_id the
// active tab is parsed.
type ParseRequest struct {
	TabID *int `json:"tab_id" example:"1234"`
}

// PanelStateRequest represents the side panel state update body.
type PanelStateRequest struct {
	Open *bool `json:"open" binding:"required" example:"true"`
}

// --- Response Types ---

// Response is the generic envelope used in swagger annotations.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody is the error envelope used in swagger annotations.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// PanelStateResponse reports whether the side panel is open.
type PanelStateResponse struct {
	Open bool `json:"open" example:"true"`
}

// DownloadURLResponse carries a presigned download URL.
type DownloadURLResponse struct {
	File *domain.CapturedFile `json:"file"`
	URL  string               `json:"download_url" example:"https://jobclip-captures.s3.amazonaws.com/captures/..."`
}
