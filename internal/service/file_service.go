package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"jobclip/internal/config"
	"jobclip/internal/domain"
	"jobclip/internal/port"
)

// FileRelay accepts files relayed from content scripts.
type FileRelay interface {
	Handle(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error)
	SetPanelOpen(open bool)
	PanelOpen() bool
}

// FileService defines the captured file contract.
type FileService interface {
	Relay(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error)
	SetPanelOpen(open bool)
	PanelOpen() bool
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type fileService struct {
	relay   FileRelay
	files   port.CapturedFileRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	relay FileRelay,
	files port.CapturedFileRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) FileService {
	return &fileService{
		relay:   relay,
		files:   files,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *fileService) Relay(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error) {
	file, err := s.relay.Handle(ctx, msg)
	if err != nil {
		log.Printf("fileService.Relay: %s from tab %d rejected: %v", msg.Action, msg.TabID, err)
		return nil, err
	}
	return file, nil
}

func (s *fileService) SetPanelOpen(open bool) {
	log.Printf("fileService.SetPanelOpen: side panel open=%t", open)
	s.relay.SetPanelOpen(open)
}

func (s *fileService) PanelOpen() bool {
	return s.relay.PanelOpen()
}

func (s *fileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CapturedFile, error) {
	return s.files.GetByID(ctx, id)
}

func (s *fileService) List(ctx context.Context, offset, limit int) ([]domain.CapturedFile, int, error) {
	return s.files.List(ctx, offset, limit)
}

func (s *fileService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, file.S3Bucket, file.S3Key, s.cfg.PresignExpiry)
}
