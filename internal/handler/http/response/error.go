package response

import (
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/daterange"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

var exposeInternalErrors atomic.Bool

// ExposeInternalErrors makes unexpected errors carry their text in the
// response body. Only development setups turn it on.
func ExposeInternalErrors(on bool) {
	exposeInternalErrors.Store(on)
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var violation *attendance.WindowViolationError
	if errors.As(err, &violation) {
		UnprocessableEntity(w, "OUTSIDE_SCHEDULE", violation.Check.Reason(), windowDetails(violation.Check))
		return
	}

	var partial *hours.PartialReprocessError
	if errors.As(err, &partial) {
		slog.Error("Hours reprocess incomplete", "updated", partial.Updated, "error", partial.Err)
		ReprocessIncomplete(w, internalMessage(err, "Reprocess stopped before finishing"), partial.Updated)
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, user.ErrMissingIdentity), errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Invalid or missing access token")

	// Request shape errors
	case errors.Is(err, daterange.ErrInvalidRangeName),
		errors.Is(err, daterange.ErrInvalidDate),
		errors.Is(err, daterange.ErrIncompleteRange),
		errors.Is(err, daterange.ErrStartAfterEnd),
		errors.Is(err, hours.ErrInvalidRange),
		errors.Is(err, attendance.ErrInvalidPunchKind),
		errors.Is(err, employee.ErrOverrideInThePast),
		errors.Is(err, employee.ErrInvalidLunchWindow):
		BadRequest(w, err.Error(), nil)

	// Business rule denials
	case errors.Is(err, attendance.ErrPunchOutOfOrder):
		UnprocessableEntity(w, "PUNCH_OUT_OF_ORDER", err.Error(), nil)

	// Not found errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, user.ErrNoEmployeeProfile):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, location.ErrWorkLocationNotFound):
		NotFound(w, "Work location not found")
	case errors.Is(err, attendance.ErrTimeRecordNotFound):
		NotFound(w, "Time record not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, internalMessage(err, "An unexpected error occurred"))
	}
}

func internalMessage(err error, generic string) string {
	if exposeInternalErrors.Load() {
		return err.Error()
	}
	return generic
}

func windowDetails(check attendance.WindowCheck) map[string]any {
	details := map[string]any{
		"type":   string(check.Kind),
		"status": check.Status.String(),
	}
	if check.Window != nil {
		details["window_min"] = check.Window.Min
		details["window_max"] = check.Window.Max
		details["window_start"] = schedule.FormatMinutes(check.Window.Min)
		details["window_end"] = schedule.FormatMinutes(check.Window.Max)
		details["tolerance_minutes"] = check.Tolerance
	}
	return details
}
