package port

import (
	"context"

	"github.com/google/uuid"

	"jobclip/internal/domain"
)

// PostingRepository defines the contract for saved posting persistence.
type PostingRepository interface {
	Create(ctx context.Context, posting *domain.SavedPosting) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error)
	List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error)
	ListAll(ctx context.Context) ([]domain.SavedPosting, error)
}

// CapturedFileRepository defines the contract for relayed file metadata.
type CapturedFileRepository interface {
	Create(ctx context.Context, file *domain.CapturedFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error)
}
