package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jobclip/internal/domain"
	"jobclip/internal/port"
)

// postingRow is the flattened postings table row.
type postingRow struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Company     string         `db:"company"`
	Description string         `db:"description"`
	Location    string         `db:"location"`
	DatePosted  sql.NullString `db:"date_posted"`
	PostedAt    sql.NullTime   `db:"posted_at"`
	URL         string         `db:"url"`
	InternalID  sql.NullString `db:"internal_id"`
	Source      string         `db:"source"`
	Reposted    sql.NullBool   `db:"reposted"`
	TabURL      string         `db:"tab_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

func toPostingRow(p *domain.SavedPosting) (*postingRow, error) {
	rec := p.Record
	row := &postingRow{
		ID:          p.ID,
		Title:       rec.Title,
		Company:     rec.Company,
		Description: rec.Description,
		Location:    rec.Location,
		URL:         rec.URL,
		Source:      rec.Source,
		TabURL:      p.TabURL,
		CreatedAt:   p.CreatedAt,
	}
	if rec.DatePosted != nil {
		b, err := json.Marshal(rec.DatePosted)
		if err != nil {
			return nil, fmt.Errorf("encoding date_posted: %w", err)
		}
		row.DatePosted = sql.NullString{String: string(b), Valid: true}
		row.PostedAt = sql.NullTime{Time: rec.DatePosted.Resolve().UTC(), Valid: true}
	}
	if rec.InternalID != nil {
		row.InternalID = sql.NullString{String: *rec.InternalID, Valid: true}
	}
	if rec.Reposted != nil {
		row.Reposted = sql.NullBool{Bool: *rec.Reposted, Valid: true}
	}
	return row, nil
}

func (r *postingRow) toDomain() (domain.SavedPosting, error) {
	p := domain.SavedPosting{
		ID:        r.ID,
		TabURL:    r.TabURL,
		CreatedAt: r.CreatedAt,
		Record: domain.PostingRecord{
			Title:       r.Title,
			Company:     r.Company,
			Description: r.Description,
			Location:    r.Location,
			URL:         r.URL,
			Source:      r.Source,
		},
	}
	if r.DatePosted.Valid {
		var d domain.PostingDate
		if err := json.Unmarshal([]byte(r.DatePosted.String), &d); err != nil {
			return p, fmt.Errorf("decoding date_posted of %s: %w", r.ID, err)
		}
		p.Record.DatePosted = &d
	}
	if r.InternalID.Valid {
		id := r.InternalID.String
		p.Record.InternalID = &id
	}
	if r.Reposted.Valid {
		reposted := r.Reposted.Bool
		p.Record.Reposted = &reposted
	}
	return p, nil
}

type postingRepo struct {
	db *sqlx.DB
}

// NewPostingRepo creates a new PostgreSQL-backed PostingRepository.
func NewPostingRepo(db *sqlx.DB) port.PostingRepository {
	return &postingRepo{db: db}
}

func (r *postingRepo) Create(ctx context.Context, posting *domain.SavedPosting) error {
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = time.Now().UTC()
	}
	row, err := toPostingRow(posting)
	if err != nil {
		return fmt.Errorf("postingRepo.Create: %w", err)
	}

	query := `INSERT INTO postings
		(id, title, company, description, location, date_posted, posted_at,
		 url, internal_id, source, reposted, tab_url, created_at)
		VALUES (:id, :title, :company, :description, :location, :date_posted, :posted_at,
		 :url, :internal_id, :source, :reposted, :tab_url, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("postingRepo.Create: %w", err)
	}
	return nil
}

func (r *postingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedPosting, error) {
	var row postingRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM postings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postingRepo.GetByID: %w", err)
	}
	p, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("postingRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *postingRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedPosting, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM postings"); err != nil {
		return nil, 0, fmt.Errorf("postingRepo.List count: %w", err)
	}

	var rows []postingRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM postings ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postingRepo.List: %w", err)
	}
	postings, err := toDomainPostings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("postingRepo.List: %w", err)
	}
	return postings, total, nil
}

func (r *postingRepo) ListAll(ctx context.Context) ([]domain.SavedPosting, error) {
	var rows []postingRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM postings ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("postingRepo.ListAll: %w", err)
	}
	postings, err := toDomainPostings(rows)
	if err != nil {
		return nil, fmt.Errorf("postingRepo.ListAll: %w", err)
	}
	return postings, nil
}

func toDomainPostings(rows []postingRow) ([]domain.SavedPosting, error) {
	out := make([]domain.SavedPosting, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
