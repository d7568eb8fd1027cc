package port

import (
	"context"

	"jobclip/internal/domain"
)

// PostingParser turns a browser tab into a structured posting. It returns
// either a validated record or a typed *domain.ParseError, never both.
type PostingParser interface {
	Parse(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error)
}

// LLMClient sends an extraction prompt to one LLM provider and decodes the reply.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, opts domain.LLMOptions) (*domain.PostingRecord, error)
}

// PostingDispatcher routes a tab to the parser that understands it.
type PostingDispatcher interface {
	Parse(ctx context.Context) (*domain.PostingRecord, error)
	ParseTab(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error)
}
