package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobclip/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

type parseFailure struct {
	kind   error
	status int
	code   string
}

// parseFailures maps extraction failure kinds to responses.
var parseFailures = []parseFailure{
	{domain.ErrNoActiveTab, http.StatusConflict, "NO_ACTIVE_TAB"},
	{domain.ErrNoURL, http.StatusUnprocessableEntity, "NO_URL"},
	{domain.ErrUnsupportedPage, http.StatusUnprocessableEntity, "UNSUPPORTED_PAGE"},
	{domain.ErrElementNotFound, http.StatusUnprocessableEntity, "ELEMENT_NOT_FOUND"},
	{domain.ErrDateParseFailed, http.StatusUnprocessableEntity, "DATE_PARSE_FAILED"},
	{domain.ErrExtractionFailed, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
	{domain.ErrCapabilityUnavailable, http.StatusServiceUnavailable, "CAPABILITY_UNAVAILABLE"},
	{domain.ErrInvalidConfiguration, http.StatusUnprocessableEntity, "INVALID_CONFIGURATION"},
	{domain.ErrUnsupportedProvider, http.StatusUnprocessableEntity, "UNSUPPORTED_PROVIDER"},
	{domain.ErrLLMRequestFailed, http.StatusBadGateway, "LLM_REQUEST_FAILED"},
	{domain.ErrProviderRequestFailed, http.StatusBadGateway, "PROVIDER_REQUEST_FAILED"},
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Extraction failures are mapped by the kind of the outermost *ParseError.
func MapDomainError(err error) (status int, code, msg string) {
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		for _, f := range parseFailures {
			if pe.Kind == f.kind {
				return f.status, f.code, parseErrorMessage(pe)
			}
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrPanelClosed):
		return http.StatusConflict, "PANEL_CLOSED", "side panel is not open"
	case errors.Is(err, domain.ErrUnsupportedMessage):
		return http.StatusBadRequest, "UNSUPPORTED_MESSAGE", "relay message is malformed or not addressed to the side panel"
	case errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusBadRequest, "INVALID_SETTINGS", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrInvalidTabEvent):
		return http.StatusBadRequest, "INVALID_TAB_EVENT", "tab event type must be activated, updated or removed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// parseErrorMessage renders a ParseError without its underlying cause.
func parseErrorMessage(pe *domain.ParseError) string {
	msg := pe.Message
	if msg == "" {
		msg = pe.Kind.Error()
	}
	if pe.Provider != "" {
		msg = pe.Provider + ": " + msg
	}
	if pe.Element != "" {
		msg += " (" + pe.Element + ")"
	}
	return msg
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	if status >= 500 {
		log.Printf("[%s] internal error: %v", requestID, err)
	} else if strings.HasSuffix(code, "_FAILED") || status == http.StatusUnprocessableEntity {
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
