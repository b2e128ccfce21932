package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

const workScheduleColumns = `
	ws.id, ws.name, ws.type, ws.work_days, ws.start_time::text, ws.end_time::text,
	ws.lunch_start::text, ws.lunch_end::text, ws.tolerance_minutes, ws.weekly_hours,
	COALESCE(ws.day_rules, '{}'::jsonb), ws.created_at, ws.updated_at`

// GetByID implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules ws WHERE ws.id = $1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule %s: %w", id, err)
	}
	return ws, nil
}

// List implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) List(ctx context.Context) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules ws ORDER BY ws.created_at ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}
	return schedules, rows.Err()
}

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var (
		ws       schedule.WorkSchedule
		kind     string
		workDays []int32
	)
	err := row.Scan(
		&ws.ID, &ws.Name, &kind, &workDays, &ws.StartTime, &ws.EndTime,
		&ws.LunchStart, &ws.LunchEnd, &ws.ToleranceMinutes, &ws.WeeklyHours,
		&ws.DayRules, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	ws.Type = schedule.PatternType(kind)
	ws.WorkDays = toWeekdays(workDays)
	return ws, nil
}

func toWeekdays(days []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, time.Weekday(d))
		}
	}
	return out
}
