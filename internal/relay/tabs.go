// Package relay tracks the extension's browser tabs and relays captured files
// from page content scripts to the side panel.
package relay

import (
	"container/list"
	"context"
	"log"
	"sync"

	"jobclip/internal/domain"
)

const defaultTabCapacity = 256

// TabTracker keeps the last-seen state of each browser tab reported by the
// extension and knows which tab is active. It holds at most capacity tabs,
// evicting the least recently seen.
type TabTracker struct {
	mu        sync.Mutex
	capacity  int
	order     *list.List
	byID      map[int]*list.Element
	activeID  int
	hasActive bool
	onRemove  []func(tabID int)
}

// NewTabTracker creates a tracker. onRemove callbacks run when a tab closes.
func NewTabTracker(capacity int, onRemove ...func(tabID int)) *TabTracker {
	if capacity <= 0 {
		capacity = defaultTabCapacity
	}
	return &TabTracker{
		capacity: capacity,
		order:    list.New(),
		byID:     make(map[int]*list.Element),
		onRemove: onRemove,
	}
}

// Observe records the latest state of a tab. An active tab becomes the
// tracker's active tab; only activation changes which tab is active.
func (t *TabTracker) Observe(tab domain.Tab) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hasActive && t.activeID == tab.ID {
		tab.Active = true
	}
	t.upsert(tab)
	if tab.Active {
		t.setActive(tab.ID)
	}
}

// Activate marks tabID as the active tab. Unknown tabs are recorded without a
// URL until the extension reports one.
func (t *TabTracker) Activate(tabID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tab := domain.Tab{ID: tabID}
	if el, ok := t.byID[tabID]; ok {
		tab = *el.Value.(*domain.Tab)
	}
	t.upsert(tab)
	t.setActive(tabID)
}

// Remove forgets a closed tab and notifies the removal callbacks.
func (t *TabTracker) Remove(tabID int) {
	t.mu.Lock()
	if el, ok := t.byID[tabID]; ok {
		t.order.Remove(el)
		delete(t.byID, tabID)
	}
	if t.hasActive && t.activeID == tabID {
		t.hasActive = false
	}
	callbacks := t.onRemove
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(tabID)
	}
}

// Get returns the tracked state of a tab.
func (t *TabTracker) Get(tabID int) (domain.Tab, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	el, ok := t.byID[tabID]
	if !ok {
		return domain.Tab{}, false
	}
	return *el.Value.(*domain.Tab), true
}

// Len reports the number of tracked tabs.
func (t *TabTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Len()
}

// ActiveTab implements port.TabAccessor. It returns nil when no tab is active.
func (t *TabTracker) ActiveTab(_ context.Context) (*domain.Tab, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.hasActive {
		return nil, nil
	}
	el, ok := t.byID[t.activeID]
	if !ok {
		return nil, nil
	}
	tab := *el.Value.(*domain.Tab)
	return &tab, nil
}

func (t *TabTracker) upsert(tab domain.Tab) {
	if el, ok := t.byID[tab.ID]; ok {
		*el.Value.(*domain.Tab) = tab
		t.order.MoveToFront(el)
		return
	}
	stored := tab
	t.byID[tab.ID] = t.order.PushFront(&stored)

	for t.order.Len() > t.capacity {
		oldest := t.order.Back()
		evicted := oldest.Value.(*domain.Tab)
		t.order.Remove(oldest)
		delete(t.byID, evicted.ID)
		if t.hasActive && t.activeID == evicted.ID {
			t.hasActive = false
		}
		log.Printf("relay.TabTracker: evicted tab %d", evicted.ID)
	}
}

// setActive must be called with mu held.
func (t *TabTracker) setActive(tabID int) {
	for _, el := range t.byID {
		tab := el.Value.(*domain.Tab)
		tab.Active = tab.ID == tabID
	}
	t.activeID = tabID
	t.hasActive = true
}
