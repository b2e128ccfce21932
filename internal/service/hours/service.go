package hours

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/daterange"
)

type HoursServiceImpl struct {
	tx             database.Transactor
	timeRecordRepo attendance.TimeRecordRepository
	employeeRepo   employee.EmployeeRepository
	logRepo        hours.ReprocessLogRepository
	loc            *time.Location
	now            func() time.Time
}

func NewHoursService(
	tx database.Transactor,
	timeRecordRepo attendance.TimeRecordRepository,
	employeeRepo employee.EmployeeRepository,
	logRepo hours.ReprocessLogRepository,
	loc *time.Location,
	now func() time.Time,
) hours.HoursService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &HoursServiceImpl{
		tx:             tx,
		timeRecordRepo: timeRecordRepo,
		employeeRepo:   employeeRepo,
		logRepo:        logRepo,
		loc:            loc,
		now:            now,
	}
}

// Reprocess implements hours.HoursService.
func (s *HoursServiceImpl) Reprocess(ctx context.Context, req hours.ReprocessRequest) (hours.ReprocessResponse, error) {
	if err := req.Validate(); err != nil {
		return hours.ReprocessResponse{}, err
	}

	period, err := s.reprocessRange(ctx, req)
	if err != nil {
		return hours.ReprocessResponse{}, err
	}

	records, err := s.timeRecordRepo.ListBetween(ctx, period.Start, period.End)
	if err != nil {
		return hours.ReprocessResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}
	days := groupByEmployeeDay(records, s.loc)

	employees, err := s.employeeRepo.ListAll(ctx, employee.ListFilter{})
	if err != nil {
		return hours.ReprocessResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	updated := 0
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return hours.ReprocessResponse{}, &hours.PartialReprocessError{Updated: updated, Err: err}
		}

		minutes := 0
		for _, day := range days[emp.ID] {
			if delta, ok := attendance.DayBalance(day, emp.WorkSchedule, emp.Lunch(), s.loc); ok {
				minutes += delta
			}
		}

		balance := attendance.HoursFromMinutes(minutes)
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.employeeRepo.SetHoursBalance(ctx, emp.ID, balance)
		})
		if err != nil {
			slog.Error("Hours reprocess stopped", "employee_id", emp.ID, "updated", updated, "error", err)
			return hours.ReprocessResponse{}, &hours.PartialReprocessError{Updated: updated, Err: err}
		}
		updated++
	}

	log, err := s.logRepo.Create(ctx, hours.ReprocessLog{
		UserID:           req.InitiatedBy,
		RangeStart:       period.Start,
		RangeEnd:         period.End,
		UpdatedEmployees: updated,
	})
	if err != nil {
		return hours.ReprocessResponse{}, &hours.PartialReprocessError{Updated: updated, Err: fmt.Errorf("failed to write reprocess log: %w", err)}
	}

	slog.Info("Hours balances reprocessed",
		"start", period.Start,
		"end", period.End,
		"records", len(records),
		"updated", updated,
	)

	return hours.ReprocessResponse{
		UpdatedEmployees: updated,
		Start:            period.Start,
		End:              period.End,
		Log:              hours.NewReprocessLogResponse(log),
	}, nil
}

// reprocessRange uses the requested dates, or spans from the day of the
// oldest record through the end of today. Without records it is today.
func (s *HoursServiceImpl) reprocessRange(ctx context.Context, req hours.ReprocessRequest) (daterange.Range, error) {
	custom, ok, err := daterange.ParseCustom(req.Start, req.End, s.loc)
	if err != nil {
		return daterange.Range{}, fmt.Errorf("%w: %w", hours.ErrInvalidRange, err)
	}
	if ok {
		return custom, nil
	}

	earliest, err := s.timeRecordRepo.EarliestTimestamp(ctx)
	if err != nil {
		return daterange.Range{}, fmt.Errorf("failed to find earliest time record: %w", err)
	}
	if earliest == nil {
		return daterange.DayOf(s.now().In(s.loc)), nil
	}

	return daterange.Range{
		Start: daterange.StartOfDay(earliest.In(s.loc)),
		End:   daterange.EndOfDay(s.now().In(s.loc)),
	}, nil
}

// groupByEmployeeDay buckets records per employee and calendar day,
// keeping timestamp order inside each bucket.
func groupByEmployeeDay(records []attendance.TimeRecord, loc *time.Location) map[string]map[string][]attendance.TimeRecord {
	out := make(map[string]map[string][]attendance.TimeRecord)
	for _, r := range records {
		days, ok := out[r.EmployeeID]
		if !ok {
			days = make(map[string][]attendance.TimeRecord)
			out[r.EmployeeID] = days
		}
		key := daterange.DayKey(r.Timestamp, loc)
		days[key] = append(days[key], r)
	}
	return out
}

// ListLogs implements hours.HoursService.
func (s *HoursServiceImpl) ListLogs(ctx context.Context, req hours.ListLogsRequest) ([]hours.ReprocessLogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := hours.LogFilter{Limit: hours.MaxLogs}
	period, ok, err := daterange.ParseCustom(req.Start, req.End, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hours.ErrInvalidRange, err)
	}
	if ok {
		filter.CreatedFrom = &period.Start
		filter.CreatedTo = &period.End
	}

	logs, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reprocess logs: %w", err)
	}

	resp := make([]hours.ReprocessLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, hours.NewReprocessLogResponse(l))
	}
	return resp, nil
}
