package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"jobclip/internal/domain"
	"jobclip/internal/export"
	"jobclip/internal/port"
)

// PostingService defines the posting capture contract.
type PostingService interface {
	Capture(ctx context.Context, tabID *int) (*domain.SavedPosting, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error)
	List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error)
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error
}

type postingService struct {
	dispatcher port.PostingDispatcher
	tabs       port.TabLookup
	repo       port.PostingRepository
	now        func() time.Time
}

// NewPostingService creates a new PostingService implementation.
func NewPostingService(
	dispatcher port.PostingDispatcher,
	tabs port.TabLookup,
	repo port.PostingRepository,
) PostingService {
	return &postingService{
		dispatcher: dispatcher,
		tabs:       tabs,
		repo:       repo,
		now:        time.Now,
	}
}

// Capture parses the given tab, or the active tab when tabID is nil, and
// saves the resulting posting.
func (s *postingService) Capture(ctx context.Context, tabID *int) (*domain.SavedPosting, error) {
	var (
		rec    *domain.PostingRecord
		tabURL string
		err    error
	)
	if tabID != nil {
		tab, ok := s.tabs.Get(*tabID)
		if !ok {
			return nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.",
				fmt.Errorf("tab %d is not tracked", *tabID))
		}
		tabURL = tab.URL
		rec, err = s.dispatcher.ParseTab(ctx, &tab)
	} else {
		rec, err = s.dispatcher.Parse(ctx)
	}
	if err != nil {
		log.Printf("postingService.Capture: parse failed: %v", err)
		return nil, err
	}
	if tabURL == "" {
		tabURL = rec.URL
	}

	saved := &domain.SavedPosting{
		ID:        uuid.New(),
		Record:    *rec,
		TabURL:    tabURL,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("saving posting: %w", err)
	}
	log.Printf("postingService.Capture: saved posting %s (%s at %s)", saved.ID, rec.Title, rec.Company)
	return saved, nil
}

func (s *postingService) Get(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postingService) List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Export writes every saved posting to w.
func (s *postingService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportCSV && format != domain.ExportXLSX {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	postings, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing postings: %w", err)
	}
	log.Printf("postingService.Export: writing %d postings as %s", len(postings), format)
	return export.Write(w, format, postings)
}
