package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `
	allow_admin_out_of_schedule, allow_hr_out_of_schedule, allow_supervisor_out_of_schedule,
	allow_coordinator_out_of_schedule, allow_manager_out_of_schedule, updated_at`

// GetOrCreate implements settings.SettingsRepository. The insert is a no-op
// when the row exists, so concurrent first reads settle on one row.
func (r *settingsRepositoryImpl) GetOrCreate(ctx context.Context, defaults settings.SystemSettings) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO system_settings (singleton,` + settingsColumns + `)
		VALUES (TRUE, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (singleton) DO NOTHING
	`
	_, err := q.Exec(ctx, insert,
		defaults.AllowAdminOutOfSchedule, defaults.AllowHROutOfSchedule, defaults.AllowSupervisorOutOfSchedule,
		defaults.AllowCoordinatorOutOfSchedule, defaults.AllowManagerOutOfSchedule,
	)
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to seed system settings: %w", err)
	}

	s, err := scanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM system_settings WHERE singleton`))
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to get system settings: %w", err)
	}
	return s, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Update(ctx context.Context, s settings.SystemSettings) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE system_settings
		SET allow_admin_out_of_schedule = $1, allow_hr_out_of_schedule = $2,
			allow_supervisor_out_of_schedule = $3, allow_coordinator_out_of_schedule = $4,
			allow_manager_out_of_schedule = $5, updated_at = NOW()
		WHERE singleton
		RETURNING ` + settingsColumns

	updated, err := scanSettings(q.QueryRow(ctx, query,
		s.AllowAdminOutOfSchedule, s.AllowHROutOfSchedule, s.AllowSupervisorOutOfSchedule,
		s.AllowCoordinatorOutOfSchedule, s.AllowManagerOutOfSchedule,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.GetOrCreate(ctx, s)
		}
		return settings.SystemSettings{}, fmt.Errorf("failed to update system settings: %w", err)
	}
	return updated, nil
}

func scanSettings(row pgx.Row) (settings.SystemSettings, error) {
	var s settings.SystemSettings
	err := row.Scan(
		&s.AllowAdminOutOfSchedule, &s.AllowHROutOfSchedule, &s.AllowSupervisorOutOfSchedule,
		&s.AllowCoordinatorOutOfSchedule, &s.AllowManagerOutOfSchedule, &s.UpdatedAt,
	)
	return s, err
}
