package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	defaults settings.SystemSettings

	mu     sync.RWMutex
	cached *settings.SystemSettings
}

// NewSettingsService returns a service that seeds the stored policy with
// defaults the first time it is read.
func NewSettingsService(repo settings.SettingsRepository, defaults settings.SystemSettings) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		defaults:           defaults,
	}
}

// Current implements settings.SettingsService.
func (s *SettingsServiceImpl) Current(ctx context.Context) (settings.SystemSettings, error) {
	s.mu.RLock()
	if s.cached != nil {
		current := *s.cached
		s.mu.RUnlock()
		return current, nil
	}
	s.mu.RUnlock()

	return s.Reload(ctx)
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SystemSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.SystemSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.SettingsRepository.GetOrCreate(ctx, s.defaults)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	updated, err := s.SettingsRepository.Update(ctx, req.Apply(current))
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	s.cached = &updated

	slog.Info("Punch policy updated",
		"admin", updated.AllowAdminOutOfSchedule,
		"hr", updated.AllowHROutOfSchedule,
		"supervisor", updated.AllowSupervisorOutOfSchedule,
		"coordinator", updated.AllowCoordinatorOutOfSchedule,
		"manager", updated.AllowManagerOutOfSchedule,
	)
	return updated, nil
}

// Reload implements settings.SettingsService.
func (s *SettingsServiceImpl) Reload(ctx context.Context) (settings.SystemSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.SettingsRepository.GetOrCreate(ctx, s.defaults)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	s.cached = &current
	return current, nil
}
