package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.employee_code, COALESCE(u.name, e.employee_code), e.department,
		e.work_schedule_id, e.work_location_id, e.is_remote, e.lunch_start::text, e.lunch_end::text,
		e.hours_balance, e.punch_override_until, e.punch_override_by, e.punch_override_reason,
		COALESCE(u.is_active, TRUE), e.created_at, e.updated_at,
		ws.id, ws.name, ws.type, ws.work_days, ws.start_time::text, ws.end_time::text,
		ws.lunch_start::text, ws.lunch_end::text, ws.tolerance_minutes, ws.weekly_hours,
		COALESCE(ws.day_rules, '{}'::jsonb), ws.created_at, ws.updated_at,
		wl.id, wl.name, wl.address, wl.latitude, wl.longitude, wl.radius_meters, wl.is_active,
		wl.created_at, wl.updated_at
	FROM employees e
	LEFT JOIN users u ON u.id = e.user_id
	LEFT JOIN work_schedules ws ON ws.id = e.work_schedule_id
	LEFT JOIN work_locations wl ON wl.id = e.work_location_id`

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee for user %s: %w", userID, err)
	}
	return emp, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAll(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.ActiveOnly {
		conditions = append(conditions, "COALESCE(u.is_active, TRUE)")
	}
	if filter.WorkScheduleID != nil {
		args = append(args, *filter.WorkScheduleID)
		conditions = append(conditions, fmt.Sprintf("e.work_schedule_id = $%d", len(args)))
	}

	query := employeeSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// AdjustHoursBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AdjustHoursBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET hours_balance = ROUND(hours_balance + $1::numeric, 2), updated_at = NOW()
		WHERE id = $2
	`
	return r.execOne(ctx, q, query, delta, id)
}

// SetHoursBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetHoursBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET hours_balance = ROUND($1::numeric, 2), updated_at = NOW()
		WHERE id = $2
	`
	return r.execOne(ctx, q, query, balance, id)
}

// SetPunchOverride implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetPunchOverride(ctx context.Context, id string, grant *employee.PunchOverrideGrant) error {
	q := GetQuerier(ctx, r.db)

	var (
		until  *time.Time
		by     *string
		reason *string
	)
	if grant != nil {
		until, by, reason = &grant.Until, &grant.GrantedBy, grant.Reason
	}

	query := `
		UPDATE employees
		SET punch_override_until = $1, punch_override_by = $2, punch_override_reason = $3, updated_at = NOW()
		WHERE id = $4
	`
	return r.execOne(ctx, q, query, until, by, reason, id)
}

// UpdateLunch implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateLunch(ctx context.Context, id string, lunchStart, lunchEnd *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET lunch_start = $1::time, lunch_end = $2::time, updated_at = NOW()
		WHERE id = $3
	`
	return r.execOne(ctx, q, query, lunchStart, lunchEnd, id)
}

func (r *employeeRepositoryImpl) execOne(ctx context.Context, q database.Querier, query string, args ...interface{}) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp           employee.Employee
		overrideUntil *time.Time
		overrideBy    *string
		overrideWhy   *string

		wsID, wsName, wsType, wsStart, wsEnd *string
		wsLunchStart, wsLunchEnd             *string
		wsWorkDays                           []int32
		wsTolerance                          *int
		wsWeeklyHours                        decimal.NullDecimal
		wsDayRules                           schedule.DayRules
		wsCreatedAt, wsUpdatedAt             *time.Time

		wlID, wlName, wlAddress  *string
		wlLat, wlLon             *float64
		wlRadius                 *int
		wlActive                 *bool
		wlCreatedAt, wlUpdatedAt *time.Time
	)

	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeCode, &emp.FullName, &emp.Department,
		&emp.WorkScheduleID, &emp.WorkLocationID, &emp.IsRemote, &emp.LunchStart, &emp.LunchEnd,
		&emp.HoursBalance, &overrideUntil, &overrideBy, &overrideWhy,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&wsID, &wsName, &wsType, &wsWorkDays, &wsStart, &wsEnd,
		&wsLunchStart, &wsLunchEnd, &wsTolerance, &wsWeeklyHours,
		&wsDayRules, &wsCreatedAt, &wsUpdatedAt,
		&wlID, &wlName, &wlAddress, &wlLat, &wlLon, &wlRadius, &wlActive,
		&wlCreatedAt, &wlUpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if overrideUntil != nil {
		emp.PunchOverride = &employee.PunchOverrideGrant{Until: *overrideUntil, Reason: overrideWhy}
		if overrideBy != nil {
			emp.PunchOverride.GrantedBy = *overrideBy
		}
	}

	if wsID != nil {
		emp.WorkSchedule = &schedule.WorkSchedule{
			ID:               *wsID,
			Name:             deref(wsName),
			Type:             schedule.PatternType(deref(wsType)),
			WorkDays:         toWeekdays(wsWorkDays),
			StartTime:        deref(wsStart),
			EndTime:          deref(wsEnd),
			LunchStart:       wsLunchStart,
			LunchEnd:         wsLunchEnd,
			ToleranceMinutes: derefInt(wsTolerance),
			WeeklyHours:      wsWeeklyHours.Decimal,
			DayRules:         wsDayRules,
			CreatedAt:        derefTime(wsCreatedAt),
			UpdatedAt:        derefTime(wsUpdatedAt),
		}
	}

	if wlID != nil {
		emp.WorkLocation = &location.WorkLocation{
			ID:           *wlID,
			Name:         deref(wlName),
			Address:      wlAddress,
			Latitude:     derefFloat(wlLat),
			Longitude:    derefFloat(wlLon),
			RadiusMeters: derefInt(wlRadius),
			IsActive:     wlActive != nil && *wlActive,
			CreatedAt:    derefTime(wlCreatedAt),
			UpdatedAt:    derefTime(wlUpdatedAt),
		}
	}

	return emp, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
