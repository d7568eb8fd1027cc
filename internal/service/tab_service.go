package service

import (
	"context"
	"fmt"
	"log"

	"jobclip/internal/domain"
)

// TabTracker records the extension's view of its tabs.
type TabTracker interface {
	Observe(tab domain.Tab)
	Activate(tabID int)
	Remove(tabID int)
}

// SnapshotStore keeps page HTML pushed by the extension.
type SnapshotStore interface {
	Store(tabID int, url, html, text string)
}

// TabService applies tab events and page snapshots sent by the extension.
type TabService interface {
	HandleEvent(ctx context.Context, event domain.TabEvent) error
	StoreSnapshot(ctx context.Context, tabID int, url, html string) error
}

type tabService struct {
	tracker   TabTracker
	snapshots SnapshotStore
}

// NewTabService creates a new TabService implementation. snapshots is nil
// when the server renders pages itself.
func NewTabService(tracker TabTracker, snapshots SnapshotStore) TabService {
	return &tabService{tracker: tracker, snapshots: snapshots}
}

func (s *tabService) HandleEvent(_ context.Context, event domain.TabEvent) error {
	switch event.Type {
	case domain.TabActivated:
		event.Tab.Active = true
		s.tracker.Observe(event.Tab)
		s.tracker.Activate(event.Tab.ID)
	case domain.TabUpdated:
		s.tracker.Observe(event.Tab)
	case domain.TabRemoved:
		s.tracker.Remove(event.Tab.ID)
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidTabEvent, event.Type)
	}
	return nil
}

func (s *tabService) StoreSnapshot(_ context.Context, tabID int, url, html string) error {
	if s.snapshots == nil {
		return domain.NewParseError(domain.ErrCapabilityUnavailable,
			"page snapshots are not accepted by this server", nil)
	}
	s.snapshots.Store(tabID, url, html, "")
	log.Printf("tabService.StoreSnapshot: stored %d bytes for tab %d", len(html), tabID)
	return nil
}
