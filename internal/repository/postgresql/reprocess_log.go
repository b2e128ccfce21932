package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type reprocessLogRepositoryImpl struct {
	db *database.DB
}

func NewReprocessLogRepository(db *database.DB) hours.ReprocessLogRepository {
	return &reprocessLogRepositoryImpl{db: db}
}

// Create implements hours.ReprocessLogRepository.
func (r *reprocessLogRepositoryImpl) Create(ctx context.Context, log hours.ReprocessLog) (hours.ReprocessLog, error) {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return hours.ReprocessLog{}, fmt.Errorf("failed to generate reprocess log id: %w", err)
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO reprocess_logs (id, user_id, range_start, range_end, updated_employees)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, log.ID, log.UserID, log.RangeStart, log.RangeEnd, log.UpdatedEmployees).Scan(&log.CreatedAt)
	if err != nil {
		return hours.ReprocessLog{}, fmt.Errorf("failed to create reprocess log: %w", err)
	}
	return log, nil
}

// List implements hours.ReprocessLogRepository.
func (r *reprocessLogRepositoryImpl) List(ctx context.Context, filter hours.LogFilter) ([]hours.ReprocessLog, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT id, user_id, range_start, range_end, updated_employees, created_at FROM reprocess_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 || limit > hours.MaxLogs {
		limit = hours.MaxLogs
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reprocess logs: %w", err)
	}
	defer rows.Close()

	var logs []hours.ReprocessLog
	for rows.Next() {
		var l hours.ReprocessLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.RangeStart, &l.RangeEnd, &l.UpdatedEmployees, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reprocess log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
