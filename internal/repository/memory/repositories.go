package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// WORK SCHEDULES
// =============================================================================

type scheduleRepository struct{ s *Store }

func (s *Store) WorkSchedules() schedule.WorkScheduleRepository { return scheduleRepository{s} }

func (r scheduleRepository) GetByID(_ context.Context, id string) (schedule.WorkSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ws, ok := r.s.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
	}
	return ws, nil
}

func (r scheduleRepository) List(_ context.Context) ([]schedule.WorkSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]schedule.WorkSchedule, 0, len(r.s.schedules))
	for _, ws := range r.s.schedules {
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type employeeRepository struct{ s *Store }

func (s *Store) Employees() employee.EmployeeRepository { return employeeRepository{s} }

func (r employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.s.joinLocked(e), nil
}

func (r employeeRepository) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.employees {
		if e.UserID != nil && *e.UserID == userID {
			return r.s.joinLocked(e), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepository) ListAll(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		if filter.ActiveOnly && !e.IsActive {
			continue
		}
		if filter.WorkScheduleID != nil && (e.WorkScheduleID == nil || *e.WorkScheduleID != *filter.WorkScheduleID) {
			continue
		}
		out = append(out, r.s.joinLocked(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// update applies fn to one employee. fn returns the step that reverts the
// fields it touched, journaled when ctx carries a unit of work.
func (r employeeRepository) update(ctx context.Context, id string, fn func(e *employee.Employee) func(e *employee.Employee)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	revert := fn(&e)
	e.UpdatedAt = r.s.now()
	r.s.employees[id] = e

	journal(ctx, func() {
		if cur, ok := r.s.employees[id]; ok {
			revert(&cur)
			r.s.employees[id] = cur
		}
	})
	return nil
}

func (r employeeRepository) AdjustHoursBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.update(ctx, id, func(e *employee.Employee) func(*employee.Employee) {
		prev := e.HoursBalance
		e.HoursBalance = e.HoursBalance.Add(delta).Round(2)
		return func(e *employee.Employee) { e.HoursBalance = prev }
	})
}

func (r employeeRepository) SetHoursBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return r.update(ctx, id, func(e *employee.Employee) func(*employee.Employee) {
		prev := e.HoursBalance
		e.HoursBalance = balance.Round(2)
		return func(e *employee.Employee) { e.HoursBalance = prev }
	})
}

func (r employeeRepository) SetPunchOverride(ctx context.Context, id string, grant *employee.PunchOverrideGrant) error {
	return r.update(ctx, id, func(e *employee.Employee) func(*employee.Employee) {
		prev := e.PunchOverride
		e.PunchOverride = nil
		if grant != nil {
			g := *grant
			e.PunchOverride = &g
		}
		return func(e *employee.Employee) { e.PunchOverride = prev }
	})
}

func (r employeeRepository) UpdateLunch(ctx context.Context, id string, lunchStart, lunchEnd *string) error {
	return r.update(ctx, id, func(e *employee.Employee) func(*employee.Employee) {
		prevStart, prevEnd := e.LunchStart, e.LunchEnd
		e.LunchStart, e.LunchEnd = lunchStart, lunchEnd
		return func(e *employee.Employee) { e.LunchStart, e.LunchEnd = prevStart, prevEnd }
	})
}

// =============================================================================
// TIME RECORDS
// =============================================================================

type timeRecordRepository struct{ s *Store }

func (s *Store) TimeRecords() attendance.TimeRecordRepository { return timeRecordRepository{s} }

func (r timeRecordRepository) Create(ctx context.Context, record attendance.TimeRecord) (attendance.TimeRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.codes[record.ConfirmationCode]; taken {
		return attendance.TimeRecord{}, attendance.ErrConfirmationCodeExists
	}
	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}
	record.CreatedAt = r.s.now()
	if e, ok := r.s.employees[record.EmployeeID]; ok {
		name := e.FullName
		record.EmployeeName = &name
	}

	r.s.records = append(r.s.records, record)
	r.s.codes[record.ConfirmationCode] = struct{}{}

	journal(ctx, func() {
		r.s.records = slices.DeleteFunc(r.s.records, func(rec attendance.TimeRecord) bool { return rec.ID == record.ID })
		delete(r.s.codes, record.ConfirmationCode)
	})
	return record, nil
}

func (r timeRecordRepository) ExistsByConfirmationCode(_ context.Context, code string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, taken := r.s.codes[code]
	return taken, nil
}

func (r timeRecordRepository) ListByEmployeeBetween(_ context.Context, employeeID string, start, end time.Time) ([]attendance.TimeRecord, error) {
	return r.filter(func(rec attendance.TimeRecord) bool {
		return rec.EmployeeID == employeeID && between(rec.Timestamp, start, end)
	}), nil
}

func (r timeRecordRepository) ListBetween(_ context.Context, start, end time.Time) ([]attendance.TimeRecord, error) {
	return r.filter(func(rec attendance.TimeRecord) bool {
		return between(rec.Timestamp, start, end)
	}), nil
}

func (r timeRecordRepository) EarliestTimestamp(_ context.Context) (*time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var earliest *time.Time
	for _, rec := range r.s.records {
		if earliest == nil || rec.Timestamp.Before(*earliest) {
			t := rec.Timestamp
			earliest = &t
		}
	}
	return earliest, nil
}

func (r timeRecordRepository) filter(keep func(attendance.TimeRecord) bool) []attendance.TimeRecord {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []attendance.TimeRecord
	for _, rec := range r.s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sortByTimestamp(out)
	return out
}

func between(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// =============================================================================
// SETTINGS
// =============================================================================

type settingsRepository struct{ s *Store }

func (s *Store) Settings() settings.SettingsRepository { return settingsRepository{s} }

func (r settingsRepository) GetOrCreate(ctx context.Context, defaults settings.SystemSettings) (settings.SystemSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		defaults.UpdatedAt = r.s.now()
		r.s.settings = &defaults
		journal(ctx, func() { r.s.settings = nil })
	}
	return *r.s.settings, nil
}

func (r settingsRepository) Update(ctx context.Context, next settings.SystemSettings) (settings.SystemSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev := r.s.settings
	next.UpdatedAt = r.s.now()
	r.s.settings = &next
	journal(ctx, func() { r.s.settings = prev })
	return next, nil
}

// =============================================================================
// REPROCESS LOGS
// =============================================================================

type reprocessLogRepository struct{ s *Store }

func (s *Store) ReprocessLogs() hours.ReprocessLogRepository { return reprocessLogRepository{s} }

func (r reprocessLogRepository) Create(ctx context.Context, log hours.ReprocessLog) (hours.ReprocessLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if log.ID == "" {
		log.ID = uuid.Must(uuid.NewV7()).String()
	}
	log.CreatedAt = r.s.now()
	r.s.logs = append(r.s.logs, log)
	journal(ctx, func() {
		r.s.logs = slices.DeleteFunc(r.s.logs, func(l hours.ReprocessLog) bool { return l.ID == log.ID })
	})
	return log, nil
}

func (r reprocessLogRepository) List(_ context.Context, filter hours.LogFilter) ([]hours.ReprocessLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []hours.ReprocessLog
	for _, l := range r.s.logs {
		if filter.CreatedFrom != nil && l.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && l.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) > 0
	})

	limit := filter.Limit
	if limit <= 0 || limit > hours.MaxLogs {
		limit = hours.MaxLogs
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
