package employee

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	UserID         *string
	EmployeeCode   string
	FullName       string
	Department     *string
	WorkScheduleID *string
	WorkLocationID *string
	IsRemote       bool
	LunchStart     *string
	LunchEnd       *string
	HoursBalance   decimal.Decimal
	PunchOverride  *PunchOverrideGrant
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joins
	WorkSchedule *schedule.WorkSchedule
	WorkLocation *location.WorkLocation
}

// PunchOverrideGrant lets an employee punch outside the schedule window
// until Until.
type PunchOverrideGrant struct {
	Until     time.Time
	GrantedBy string
	Reason    *string
}

// ActiveAt reports whether the grant still applies at now. The expiry
// instant itself is still covered.
func (g *PunchOverrideGrant) ActiveAt(now time.Time) bool {
	return g != nil && !now.After(g.Until)
}

// Lunch returns the employee's personal lunch override.
func (e *Employee) Lunch() schedule.LunchOverride {
	return schedule.LunchOverride{Start: e.LunchStart, End: e.LunchEnd}
}

// Geofenced reports whether punches by this employee are checked against
// a work location radius.
func (e *Employee) Geofenced() bool {
	return !e.IsRemote && e.WorkLocation != nil
}
