package port

import (
	"context"

	"jobclip/internal/domain"
)

// SettingsStore reads the persisted user settings. Every Load returns an
// independent snapshot.
type SettingsStore interface {
	Load(ctx context.Context) (*domain.UserSettings, error)
}

// SettingsWriter persists user settings. Only the options UI writes.
type SettingsWriter interface {
	SettingsStore
	Save(ctx context.Context, settings *domain.UserSettings) error
}
