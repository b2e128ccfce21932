package employee

import "context"

// EmployeeService administers per-employee attendance exceptions
type EmployeeService interface {
	// SetPunchOverride grants a time-boxed out-of-window punch permission
	SetPunchOverride(ctx context.Context, req SetPunchOverrideRequest) (PunchOverrideResponse, error)

	// ClearPunchOverride revokes any standing grant
	ClearPunchOverride(ctx context.Context, employeeID string) (PunchOverrideResponse, error)

	// UpdateLunch sets or clears the personal lunch window
	UpdateLunch(ctx context.Context, req UpdateLunchRequest) (LunchResponse, error)
}
