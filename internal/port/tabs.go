package port

import (
	"context"

	"jobclip/internal/domain"
)

// TabAccessor resolves the currently active browser tab. A nil tab with a nil
// error means no tab is active.
type TabAccessor interface {
	ActiveTab(ctx context.Context) (*domain.Tab, error)
}

// TabLookup resolves a tracked tab by ID.
type TabLookup interface {
	Get(tabID int) (domain.Tab, bool)
}
