package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed       = errors.New("file upload to storage failed")
	ErrPanelClosed        = errors.New("side panel is not open")
	ErrUnsupportedMessage = errors.New("unsupported relay message")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidTabEvent    = errors.New("invalid tab event")
)

// Posting extraction failures. Every parser returns one of these (wrapped in a
// *ParseError) instead of a partially populated record.
var (
	ErrCapabilityUnavailable = errors.New("scripting capability unavailable")
	ErrExtractionFailed      = errors.New("failed to extract description")
	ErrUnsupportedPage       = errors.New("unsupported page")
	ErrElementNotFound       = errors.New("element not found")
	ErrDateParseFailed       = errors.New("failed to parse posting date")
	ErrNoActiveTab           = errors.New("no active tab found")
	ErrNoURL                 = errors.New("no url found for the active tab")
	ErrInvalidConfiguration  = errors.New("invalid parser configuration")
	ErrUnsupportedProvider   = errors.New("unsupported llm provider")
	ErrProviderRequestFailed = errors.New("llm provider request failed")
	ErrLLMRequestFailed      = errors.New("llm request failed")
)

// ParseError is the typed failure returned by the extraction subsystem.
// Kind is one of the sentinels above; Provider and Element carry the context
// a caller needs to render an actionable message.
type ParseError struct {
	Kind     error
	Message  string
	Provider string
	Element  string
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if e.Element != "" {
		b.WriteString(" (")
		b.WriteString(e.Element)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrElementNotFound) holds for
// any ParseError of that kind regardless of wrapping.
func (e *ParseError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewParseError builds a ParseError of the given kind.
func NewParseError(kind error, msg string, err error) *ParseError {
	return &ParseError{Kind: kind, Message: msg, Err: err}
}

// ElementNotFound reports a missing or empty DOM anchor.
func ElementNotFound(selector string) *ParseError {
	return &ParseError{Kind: ErrElementNotFound, Message: "element not found", Element: selector}
}

// ProviderFailure reports a failed call to an LLM provider.
func ProviderFailure(provider Provider, err error) *ParseError {
	return &ParseError{
		Kind:     ErrProviderRequestFailed,
		Message:  "API request failed",
		Provider: provider.DisplayName(),
		Err:      err,
	}
}
