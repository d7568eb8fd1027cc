package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"jobclip/internal/domain"
	"jobclip/internal/port"
)

type capturedFileRepo struct {
	db *sqlx.DB
}

// NewCapturedFileRepo creates a new PostgreSQL-backed CapturedFileRepository.
func NewCapturedFileRepo(db *sqlx.DB) port.CapturedFileRepository {
	return &capturedFileRepo{db: db}
}

func (r *capturedFileRepo) Create(ctx context.Context, file *domain.CapturedFile) error {
	query := `INSERT INTO captured_files
		(id, file_name, content_type, size, source_url, s3_bucket, s3_key, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.FileName, file.ContentType, file.Size, file.SourceURL,
		file.S3Bucket, file.S3Key, file.CapturedAt)
	if err != nil {
		return fmt.Errorf("capturedFileRepo.Create: %w", err)
	}
	return nil
}

func (r *capturedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error) {
	var file domain.CapturedFile
	err := r.db.GetContext(ctx, &file, "SELECT * FROM captured_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("capturedFileRepo.GetByID: %w", err)
	}
	return &file, nil
}

func (r *capturedFileRepo) List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM captured_files"); err != nil {
		return nil, 0, fmt.Errorf("capturedFileRepo.List count: %w", err)
	}

	var files []domain.CapturedFile
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM captured_files ORDER BY captured_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("capturedFileRepo.List: %w", err)
	}
	return files, total, nil
}
