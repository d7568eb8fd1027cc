package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobclip/internal/domain"
	"jobclip/internal/port"
)

var dataURLMimeRe = regexp.MustCompile(`:(.*?);`)

// Config holds relay limits and the storage bucket.
type Config struct {
	Bucket       string
	MaxFileBytes int64
}

// Relay receives files captured by content scripts and hands them to the
// side panel by storing them. Files are only accepted while the side panel
// is open.
type Relay struct {
	storage port.ObjectStorage
	files   port.CapturedFileRepository
	tabs    *TabTracker
	cfg     Config

	mu        sync.RWMutex
	panelOpen bool
}

// New creates a Relay.
func New(storage port.ObjectStorage, files port.CapturedFileRepository, tabs *TabTracker, cfg Config) *Relay {
	return &Relay{
		storage: storage,
		files:   files,
		tabs:    tabs,
		cfg:     cfg,
	}
}

// SetPanelOpen records whether the side panel is open.
func (r *Relay) SetPanelOpen(open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panelOpen = open
}

// PanelOpen answers the content script's side panel state query.
func (r *Relay) PanelOpen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.panelOpen
}

// Handle processes one relayed message. Only uploads addressed to the side
// panel are supported.
func (r *Relay) Handle(ctx context.Context, msg domain.FileMessage) (*domain.CapturedFile, error) {
	if msg.Target != domain.TargetSidePanel || msg.Action != domain.FileActionUpload {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedMessage, msg.Action, msg.Target)
	}
	if !r.PanelOpen() {
		return nil, domain.ErrPanelClosed
	}

	content, mime, err := decodeDataURL(msg.Data.Content, msg.Data.Type)
	if err != nil {
		return nil, err
	}
	if r.cfg.MaxFileBytes > 0 && int64(len(content)) > r.cfg.MaxFileBytes {
		return nil, domain.ErrFileTooLarge
	}

	id, err := uuid.Parse(msg.Data.FileID)
	if err != nil {
		id = uuid.New()
	}
	name := path.Base(strings.ReplaceAll(msg.Data.Name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = id.String()
	}

	var sourceURL string
	if tab, ok := r.tabs.Get(msg.TabID); ok {
		sourceURL = tab.URL
	}

	capturedAt := time.Now().UTC()
	if msg.Data.Timestamp > 0 {
		capturedAt = time.UnixMilli(msg.Data.Timestamp).UTC()
	}

	file := &domain.CapturedFile{
		ID:          id,
		FileName:    name,
		ContentType: mime,
		Size:        int64(len(content)),
		SourceURL:   sourceURL,
		S3Bucket:    r.cfg.Bucket,
		S3Key:       fmt.Sprintf("captures/%s/%s", id, name),
		CapturedAt:  capturedAt,
	}

	log.Printf("relay.Handle: storing %s (%s, %d bytes) from tab %d", name, mime, file.Size, msg.TabID)

	if _, err := r.storage.Upload(ctx, port.UploadInput{
		Bucket:      file.S3Bucket,
		Key:         file.S3Key,
		Body:        bytes.NewReader(content),
		ContentType: mime,
		Size:        file.Size,
	}); err != nil {
		log.Printf("relay.Handle: S3 upload failed for %s: %v", file.ID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := r.files.Create(ctx, file); err != nil {
		if delErr := r.storage.Delete(ctx, file.S3Bucket, file.S3Key); delErr != nil {
			log.Printf("relay.Handle: cleanup of %s failed: %v", file.S3Key, delErr)
		}
		return nil, fmt.Errorf("recording captured file: %w", err)
	}
	return file, nil
}

// decodeDataURL splits a base64 data URL into its bytes and mime type. The
// mime type in the URL header wins over fallback.
func decodeDataURL(dataURL, fallback string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, "", fmt.Errorf("%w: content is not a data url", domain.ErrUnsupportedMessage)
	}

	mime := fallback
	if m := dataURLMimeRe.FindStringSubmatch(header); m != nil && m[1] != "" {
		mime = m[1]
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid base64 payload", domain.ErrUnsupportedMessage)
	}
	return content, mime, nil
}
