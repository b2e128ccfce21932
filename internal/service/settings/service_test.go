package settings

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestCurrent_SeedsDefaults(t *testing.T) {
	store := memory.NewStore()
	defaults := settings.Default()
	defaults.AllowManagerOutOfSchedule = true

	svc := NewSettingsService(store.Settings(), defaults)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, current.AllowManagerOutOfSchedule)
	assert.True(t, current.AllowAdminOutOfSchedule)
}

func TestUpdate_PatchesOnlyProvidedFlags(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), settings.Default())

	updated, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		AllowHROutOfSchedule:      boolPtr(false),
		AllowManagerOutOfSchedule: boolPtr(true),
	})
	require.NoError(t, err)
	assert.False(t, updated.AllowHROutOfSchedule)
	assert.True(t, updated.AllowManagerOutOfSchedule)
	assert.True(t, updated.AllowAdminOutOfSchedule)
	assert.True(t, updated.AllowSupervisorOutOfSchedule)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, current)
}

func TestUpdate_RejectsEmptyPatch(t *testing.T) {
	svc := NewSettingsService(memory.NewStore().Settings(), settings.Default())

	_, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReload_PicksUpExternalChanges(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewSettingsService(store.Settings(), settings.Default())

	_, err := svc.Current(ctx)
	require.NoError(t, err)

	// a second instance writes through the same store
	other := NewSettingsService(store.Settings(), settings.Default())
	_, err = other.Update(ctx, settings.UpdateSettingsRequest{AllowAdminOutOfSchedule: boolPtr(false)})
	require.NoError(t, err)

	cached, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.True(t, cached.AllowAdminOutOfSchedule)

	reloaded, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, reloaded.AllowAdminOutOfSchedule)
}
