package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation            = "23505"
	confirmationCodeConstraint = "time_records_confirmation_code_key"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) attendance.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

const timeRecordSelect = `
	SELECT tr.id, tr.employee_id, tr.record_type, tr.timestamp, tr.latitude, tr.longitude,
		tr.work_location_id, tr.is_within_radius, tr.distance_meters,
		tr.schedule_override, tr.schedule_override_by, tr.schedule_override_reason,
		tr.confirmation_code, COALESCE(tr.device_info, '{}'::jsonb), tr.created_at, u.name
	FROM time_records tr
	JOIN employees e ON e.id = tr.employee_id
	LEFT JOIN users u ON u.id = e.user_id`

// Create implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) Create(ctx context.Context, record attendance.TimeRecord) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.TimeRecord{}, fmt.Errorf("failed to generate time record id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		INSERT INTO time_records (
			id, employee_id, record_type, timestamp, latitude, longitude,
			work_location_id, is_within_radius, distance_meters,
			schedule_override, schedule_override_by, schedule_override_reason,
			confirmation_code, device_info
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, string(record.Kind), record.Timestamp, record.Latitude, record.Longitude,
		record.WorkLocationID, record.IsWithinRadius, record.DistanceMeters,
		record.ScheduleOverride, record.OverrideBy, record.OverrideReason,
		record.ConfirmationCode, record.DeviceInfo,
	).Scan(&record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == confirmationCodeConstraint {
			return attendance.TimeRecord{}, attendance.ErrConfirmationCodeExists
		}
		return attendance.TimeRecord{}, fmt.Errorf("failed to create time record: %w", err)
	}

	return record, nil
}

// ExistsByConfirmationCode implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) ExistsByConfirmationCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM time_records WHERE confirmation_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check confirmation code: %w", err)
	}
	return exists, nil
}

// ListByEmployeeBetween implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := timeRecordSelect + `
		WHERE tr.employee_id = $1 AND tr.timestamp BETWEEN $2 AND $3
		ORDER BY tr.timestamp ASC, tr.created_at ASC`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records for employee %s: %w", employeeID, err)
	}
	return collectTimeRecords(rows)
}

// ListBetween implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := timeRecordSelect + `
		WHERE tr.timestamp BETWEEN $1 AND $2
		ORDER BY tr.timestamp ASC, tr.created_at ASC`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	return collectTimeRecords(rows)
}

// EarliestTimestamp implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) EarliestTimestamp(ctx context.Context) (*time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var earliest *time.Time
	if err := q.QueryRow(ctx, `SELECT MIN(timestamp) FROM time_records`).Scan(&earliest); err != nil {
		return nil, fmt.Errorf("failed to get earliest time record: %w", err)
	}
	return earliest, nil
}

func collectTimeRecords(rows pgx.Rows) ([]attendance.TimeRecord, error) {
	defer rows.Close()

	var records []attendance.TimeRecord
	for rows.Next() {
		var (
			rec  attendance.TimeRecord
			kind string
		)
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &kind, &rec.Timestamp, &rec.Latitude, &rec.Longitude,
			&rec.WorkLocationID, &rec.IsWithinRadius, &rec.DistanceMeters,
			&rec.ScheduleOverride, &rec.OverrideBy, &rec.OverrideReason,
			&rec.ConfirmationCode, &rec.DeviceInfo, &rec.CreatedAt, &rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		rec.Kind = attendance.PunchKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}
