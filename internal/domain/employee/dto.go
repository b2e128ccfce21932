package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type SetPunchOverrideRequest struct {
	EmployeeID    string  `json:"-"`
	OverrideUntil *string `json:"override_until"`
	Reason        *string `json:"reason"`
}

func (r *SetPunchOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.OverrideUntil != nil && !validator.IsEmpty(*r.OverrideUntil) {
		if _, ok := validator.IsValidDateTime(*r.OverrideUntil); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "override_until",
				Message: "override_until must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Until resolves the requested expiry. Without one the grant lasts until
// the end of today in loc.
func (r *SetPunchOverrideRequest) Until(now time.Time, loc *time.Location) time.Time {
	if r.OverrideUntil != nil && !validator.IsEmpty(*r.OverrideUntil) {
		if t, ok := validator.IsValidDateTime(*r.OverrideUntil); ok {
			return t
		}
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// TrimmedReason returns the reason without surrounding space, or nil when
// nothing is left.
func (r *SetPunchOverrideRequest) TrimmedReason() *string {
	if r.Reason == nil {
		return nil
	}
	reason := strings.TrimSpace(*r.Reason)
	if reason == "" {
		return nil
	}
	return &reason
}

type UpdateLunchRequest struct {
	EmployeeID string  `json:"-"`
	LunchStart *string `json:"lunch_start"`
	LunchEnd   *string `json:"lunch_end"`
}

func (r *UpdateLunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	start, end := nonEmpty(r.LunchStart), nonEmpty(r.LunchEnd)
	if start != nil && !validator.IsValidClock(*start) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_start",
			Message: "lunch_start must be in HH:MM or HH:MM:SS format",
		})
	}
	if end != nil && !validator.IsValidClock(*end) {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_end",
			Message: "lunch_end must be in HH:MM or HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Normalized returns the lunch bounds with empty values mapped to nil.
func (r *UpdateLunchRequest) Normalized() (start, end *string) {
	return nonEmpty(r.LunchStart), nonEmpty(r.LunchEnd)
}

func nonEmpty(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type PunchOverrideResponse struct {
	EmployeeID    string     `json:"employee_id"`
	OverrideUntil *time.Time `json:"punch_override_until"`
	OverrideBy    *string    `json:"punch_override_by"`
	Reason        *string    `json:"punch_override_reason"`
}

type LunchResponse struct {
	EmployeeID string  `json:"employee_id"`
	LunchStart *string `json:"lunch_start"`
	LunchEnd   *string `json:"lunch_end"`
}
