package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	// GetByID and GetByUserID load the employee with its schedule and location.
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// ListAll returns every employee with schedule and location joined.
	ListAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	AdjustHoursBalance(ctx context.Context, id string, delta decimal.Decimal) error
	SetHoursBalance(ctx context.Context, id string, balance decimal.Decimal) error
	SetPunchOverride(ctx context.Context, id string, grant *PunchOverrideGrant) error
	UpdateLunch(ctx context.Context, id string, lunchStart, lunchEnd *string) error
}

type ListFilter struct {
	ActiveOnly     bool
	WorkScheduleID *string
}
