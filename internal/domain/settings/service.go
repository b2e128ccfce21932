package settings

import "context"

// SettingsService serves the punch policy singleton
type SettingsService interface {
	// Current returns the cached policy, loading it on first use
	Current(ctx context.Context) (SystemSettings, error)

	// Update patches the stored policy and refreshes the cache
	Update(ctx context.Context, req UpdateSettingsRequest) (SystemSettings, error)

	// Reload drops the cache and reads the stored policy again
	Reload(ctx context.Context) (SystemSettings, error)
}
