package settings

import "context"

type SettingsRepository interface {
	// GetOrCreate returns the stored row, inserting defaults when none exists.
	GetOrCreate(ctx context.Context, defaults SystemSettings) (SystemSettings, error)
	Update(ctx context.Context, s SystemSettings) (SystemSettings, error)
}
