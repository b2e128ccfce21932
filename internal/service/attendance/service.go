package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/daterange"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/keylock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

const (
	warningMissingCoordinates = "location not provided; punch flagged outside the work location radius"
	warningOverrideApplied    = "schedule override applied"
)

type Options struct {
	Location     *time.Location
	OrderMode    attendance.OrderMode
	CodeAttempts int
	Now          func() time.Time
	NewCode      func(now time.Time) string
	// Hub receives every stored punch on attendance.FeedTopic.
	Hub          *sse.Hub
}

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.TimeRecordRepository
	employee.EmployeeRepository
	settingsService settings.SettingsService
	locks           *keylock.Locker
	hub             *sse.Hub

	loc          *time.Location
	orderMode    attendance.OrderMode
	codeAttempts int
	now          func() time.Time
	newCode      func(now time.Time) string
}

func NewAttendanceService(
	tx database.Transactor,
	timeRecordRepo attendance.TimeRecordRepository,
	employeeRepo employee.EmployeeRepository,
	settingsService settings.SettingsService,
	opts Options,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		tx:                   tx,
		TimeRecordRepository: timeRecordRepo,
		EmployeeRepository:   employeeRepo,
		settingsService:      settingsService,
		locks:                keylock.New(),
		hub:                  opts.Hub,
		loc:                  opts.Location,
		orderMode:            opts.OrderMode,
		codeAttempts:         opts.CodeAttempts,
		now:                  opts.Now,
		newCode:              opts.NewCode,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.orderMode == "" {
		s.orderMode = attendance.OrderLenient
	}
	if s.codeAttempts <= 0 {
		s.codeAttempts = 5
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = NewConfirmationCode
	}
	if s.hub == nil {
		s.hub = sse.NewHub(0)
	}
	return s
}

// Record implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Record(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	kind, err := attendance.ParsePunchKind(req.Type)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByUserID(ctx, req.Caller.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.PunchResponse{}, err
		}
		return attendance.PunchResponse{}, fmt.Errorf("failed to get employee for user %s: %w", req.Caller.UserID, err)
	}
	if !emp.IsActive {
		return attendance.PunchResponse{}, employee.ErrEmployeeInactive
	}

	unlock := a.locks.Lock(emp.ID)
	defer unlock()

	now := a.now().In(a.loc)
	var warnings []string

	check := attendance.CheckWindow(emp.WorkSchedule, kind, now, emp.Lunch())
	if w := check.Warning(); w != "" {
		warnings = append(warnings, w)
	}

	policy, err := a.settingsService.Current(ctx)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to load punch policy: %w", err)
	}

	decision := attendance.AuthorizeOverride(req.Caller.Role, &emp, check, policy, req.Caller.UserID, now)
	if !decision.Allowed {
		slog.Info("Punch rejected by schedule",
			"employee_id", emp.ID,
			"type", kind,
			"reason", check.Reason(),
		)
		return attendance.PunchResponse{}, &attendance.WindowViolationError{Check: check}
	}
	if decision.Applied() {
		warnings = append(warnings, warningOverrideApplied)
	}

	day := daterange.DayOf(now)
	today, err := a.TimeRecordRepository.ListByEmployeeBetween(ctx, emp.ID, day.Start, day.End)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to load today's records: %w", err)
	}
	if err := attendance.CheckSequence(a.orderMode, today, kind); err != nil {
		return attendance.PunchResponse{}, err
	}

	record := attendance.TimeRecord{
		EmployeeID:       emp.ID,
		Kind:             kind,
		Timestamp:        now,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		IsWithinRadius:   true,
		ScheduleOverride: decision.Applied(),
		OverrideBy:       decision.By,
		OverrideReason:   decision.Reason,
		DeviceInfo:       req.Device,
	}
	if emp.WorkLocation != nil {
		record.WorkLocationID = &emp.WorkLocation.ID
	}
	if w := applyGeofence(&record, &emp, req); w != "" {
		warnings = append(warnings, w)
	}

	created, err := a.persist(ctx, record, &emp, today)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	slog.Info("Punch recorded",
		"employee_id", emp.ID,
		"type", kind,
		"confirmation_code", created.ConfirmationCode,
		"within_radius", created.IsWithinRadius,
		"override", string(decision.Source),
	)

	resp := attendance.PunchResponse{
		Record:           attendance.NewTimeRecordResponse(created),
		Warnings:         warnings,
		ScheduleOverride: created.ScheduleOverride,
		WorkLocation:     emp.WorkLocation.Summary(),
	}
	if len(warnings) > 0 {
		joined := strings.Join(warnings, "; ")
		resp.Warning = &joined
	}

	a.hub.Publish(attendance.FeedTopic, sse.Event{
		Event: attendance.FeedEventPunch,
		Data: attendance.PunchEvent{
			Record:       resp.Record,
			EmployeeCode: emp.EmployeeCode,
			Department:   emp.Department,
			Warnings:     warnings,
		},
	})
	return resp, nil
}

// Subscribe implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Subscribe(ctx context.Context) (<-chan attendance.FeedEvent, func()) {
	ch, cleanup := a.hub.Subscribe(attendance.FeedTopic)

	out := make(chan attendance.FeedEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				data, ok := event.Data.(attendance.PunchEvent)
				if !ok {
					continue
				}
				select {
				case out <- attendance.FeedEvent{Event: event.Event, Data: data}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// applyGeofence fills the radius fields of record. Remote employees and
// employees without a location are always inside. Missing coordinates
// count as outside.
func applyGeofence(record *attendance.TimeRecord, emp *employee.Employee, req attendance.PunchRequest) (warning string) {
	if !emp.Geofenced() {
		return ""
	}
	if !req.HasCoordinates() {
		record.IsWithinRadius = false
		return warningMissingCoordinates
	}

	distance, within := geo.WithinRadius(
		geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude},
		emp.WorkLocation.Point(),
		emp.WorkLocation.RadiusMeters,
	)
	record.DistanceMeters = &distance
	record.IsWithinRadius = within
	return ""
}

// persist stores the record and, for the first exit of the day, moves the
// hours balance by the day's surplus or deficit. A confirmation code taken
// between the existence check and the insert is replaced and retried until
// the insert lands or ctx is done. Past codeAttempts collisions every retry
// uses a salted code.
func (a *AttendanceServiceImpl) persist(ctx context.Context, record attendance.TimeRecord, emp *employee.Employee, today []attendance.TimeRecord) (attendance.TimeRecord, error) {
	firstExit := record.Kind == attendance.PunchExit && !hasKind(today, attendance.PunchExit)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return attendance.TimeRecord{}, err
		}

		code := ""
		if attempt < a.codeAttempts {
			var err error
			if code, err = a.uniqueCode(ctx); err != nil {
				return attendance.TimeRecord{}, err
			}
		} else {
			code = saltedConfirmationCode(a.now())
		}
		record.ConfirmationCode = code

		var created attendance.TimeRecord
		err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			created, err = a.TimeRecordRepository.Create(ctx, record)
			if err != nil {
				return err
			}
			if !firstExit {
				return nil
			}

			day := append(append([]attendance.TimeRecord{}, today...), created)
			minutes, ok := attendance.DayBalance(day, emp.WorkSchedule, emp.Lunch(), a.loc)
			if !ok {
				return nil
			}
			delta := attendance.HoursFromMinutes(minutes)
			if err := a.EmployeeRepository.AdjustHoursBalance(ctx, emp.ID, delta); err != nil {
				return fmt.Errorf("failed to adjust hours balance: %w", err)
			}
			slog.Info("Hours balance adjusted", "employee_id", emp.ID, "delta_hours", delta.String())
			return nil
		})
		if errors.Is(err, attendance.ErrConfirmationCodeExists) {
			slog.Warn("Confirmation code collided on insert, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return attendance.TimeRecord{}, fmt.Errorf("failed to record punch: %w", err)
		}
		return created, nil
	}
}

// uniqueCode draws codes until one is unused, up to the configured number
// of regenerations, then falls back to a salted code.
func (a *AttendanceServiceImpl) uniqueCode(ctx context.Context) (string, error) {
	code := a.newCode(a.now())
	for attempt := 0; attempt < a.codeAttempts; attempt++ {
		exists, err := a.TimeRecordRepository.ExistsByConfirmationCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check confirmation code: %w", err)
		}
		if !exists {
			return code, nil
		}
		code = a.newCode(a.now())
	}
	return saltedConfirmationCode(a.now()), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, req attendance.ListMyRecordsRequest) (attendance.ListRecordsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	ref, err := daterange.ParseDate(req.Date, a.loc, a.now())
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	period, err := daterange.Named(req.Range, ref)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByUserID(ctx, req.Caller.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ListRecordsResponse{}, err
		}
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to get employee for user %s: %w", req.Caller.UserID, err)
	}

	records, err := a.TimeRecordRepository.ListByEmployeeBetween(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	rangeName := strings.ToLower(strings.TrimSpace(req.Range))
	if rangeName == "" {
		rangeName = daterange.Day
	}

	resp := attendance.ListRecordsResponse{
		Range:   rangeName,
		Start:   period.Start,
		End:     period.End,
		Records: make([]attendance.TimeRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, attendance.NewTimeRecordResponse(r))
	}
	return resp, nil
}

func hasKind(records []attendance.TimeRecord, kind attendance.PunchKind) bool {
	for _, r := range records {
		if r.Kind == kind {
			return true
		}
	}
	return false
}
