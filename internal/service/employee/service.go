package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, loc *time.Location, now func() time.Time) employee.EmployeeService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          now,
	}
}

// SetPunchOverride implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetPunchOverride(ctx context.Context, req employee.SetPunchOverrideRequest) (employee.PunchOverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.PunchOverrideResponse{}, err
	}

	caller, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return employee.PunchOverrideResponse{}, err
	}

	if _, err := s.getEmployee(ctx, req.EmployeeID); err != nil {
		return employee.PunchOverrideResponse{}, err
	}

	now := s.now()
	until := req.Until(now, s.loc)
	if !until.After(now) {
		return employee.PunchOverrideResponse{}, employee.ErrOverrideInThePast
	}

	grant := &employee.PunchOverrideGrant{
		Until:     until,
		GrantedBy: caller.UserID,
		Reason:    req.TrimmedReason(),
	}
	if err := s.employeeRepo.SetPunchOverride(ctx, req.EmployeeID, grant); err != nil {
		return employee.PunchOverrideResponse{}, fmt.Errorf("failed to set punch override: %w", err)
	}

	slog.Info("Punch override granted",
		"employee_id", req.EmployeeID,
		"granted_by", caller.UserID,
		"until", until,
	)

	return employee.PunchOverrideResponse{
		EmployeeID:    req.EmployeeID,
		OverrideUntil: &grant.Until,
		OverrideBy:    &grant.GrantedBy,
		Reason:        grant.Reason,
	}, nil
}

// ClearPunchOverride implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ClearPunchOverride(ctx context.Context, employeeID string) (employee.PunchOverrideResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return employee.PunchOverrideResponse{}, validator.ValidationErrors{{
			Field:   "id",
			Message: "id must be a valid UUID",
		}}
	}

	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return employee.PunchOverrideResponse{}, err
	}

	if err := s.employeeRepo.SetPunchOverride(ctx, employeeID, nil); err != nil {
		return employee.PunchOverrideResponse{}, fmt.Errorf("failed to clear punch override: %w", err)
	}

	slog.Info("Punch override cleared", "employee_id", employeeID)
	return employee.PunchOverrideResponse{EmployeeID: employeeID}, nil
}

// UpdateLunch implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateLunch(ctx context.Context, req employee.UpdateLunchRequest) (employee.LunchResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.LunchResponse{}, err
	}

	start, end := req.Normalized()
	if start != nil && end != nil {
		startMin, _ := schedule.ParseClock(*start)
		endMin, _ := schedule.ParseClock(*end)
		if startMin >= endMin {
			return employee.LunchResponse{}, employee.ErrInvalidLunchWindow
		}
	}

	if _, err := s.getEmployee(ctx, req.EmployeeID); err != nil {
		return employee.LunchResponse{}, err
	}

	if err := s.employeeRepo.UpdateLunch(ctx, req.EmployeeID, start, end); err != nil {
		return employee.LunchResponse{}, fmt.Errorf("failed to update lunch window: %w", err)
	}

	return employee.LunchResponse{
		EmployeeID: req.EmployeeID,
		LunchStart: start,
		LunchEnd:   end,
	}, nil
}

func (s *EmployeeServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}
