package page

import (
	"container/list"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"jobclip/internal/domain"
)

type snapshot struct {
	tabID    int
	url      string
	html     string
	text     string
	storedAt time.Time
}

// SnapshotHost runs scripts against the latest HTML snapshot the extension
// pushed for a tab. It keeps at most capacity snapshots and drops the least
// recently stored or read.
type SnapshotHost struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	byTab    map[int]*list.Element
}

// NewSnapshotHost creates a SnapshotHost holding up to capacity snapshots.
func NewSnapshotHost(capacity int) *SnapshotHost {
	if capacity <= 0 {
		capacity = 64
	}
	return &SnapshotHost{
		capacity: capacity,
		order:    list.New(),
		byTab:    make(map[int]*list.Element),
	}
}

// Store records the page HTML of a tab, replacing any earlier snapshot.
// text is the rendered body text if the extension sent it, else empty.
func (h *SnapshotHost) Store(tabID int, url, html, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if el, ok := h.byTab[tabID]; ok {
		h.order.Remove(el)
		delete(h.byTab, tabID)
	}
	h.byTab[tabID] = h.order.PushFront(&snapshot{
		tabID:    tabID,
		url:      url,
		html:     html,
		text:     text,
		storedAt: time.Now().UTC(),
	})

	for h.order.Len() > h.capacity {
		oldest := h.order.Back()
		s := oldest.Value.(*snapshot)
		h.order.Remove(oldest)
		delete(h.byTab, s.tabID)
		log.Printf("page.SnapshotHost: evicted snapshot for tab %d", s.tabID)
	}
}

// Forget drops the snapshot of a closed tab.
func (h *SnapshotHost) Forget(tabID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if el, ok := h.byTab[tabID]; ok {
		h.order.Remove(el)
		delete(h.byTab, tabID)
	}
}

// Len reports how many snapshots are held.
func (h *SnapshotHost) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.order.Len()
}

// Execute runs script against the tab's latest snapshot. Reading a snapshot
// marks it as recently used.
func (h *SnapshotHost) Execute(_ context.Context, tab domain.Tab, script Script) (any, error) {
	h.mu.Lock()
	el, ok := h.byTab[tab.ID]
	var s snapshot
	if ok {
		h.order.MoveToFront(el)
		s = *el.Value.(*snapshot)
	}
	h.mu.Unlock()

	if !ok {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description",
			fmt.Errorf("no snapshot for tab %d", tab.ID))
	}

	url := s.url
	if url == "" {
		url = tab.URL
	}
	p, err := NewPage(url, s.html)
	if err != nil {
		return nil, domain.NewParseError(domain.ErrExtractionFailed, "Failed to extract description", err)
	}
	p.Text = s.text
	return Run(p, script)
}
