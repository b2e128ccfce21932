package settings

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
)

// SystemSettings is the single policy row deciding which privileged roles
// may always punch outside their schedule window.
type SystemSettings struct {
	AllowAdminOutOfSchedule       bool      `json:"allow_admin_out_of_schedule" yaml:"allow_admin_out_of_schedule"`
	AllowHROutOfSchedule          bool      `json:"allow_hr_out_of_schedule" yaml:"allow_hr_out_of_schedule"`
	AllowSupervisorOutOfSchedule  bool      `json:"allow_supervisor_out_of_schedule" yaml:"allow_supervisor_out_of_schedule"`
	AllowCoordinatorOutOfSchedule bool      `json:"allow_coordinator_out_of_schedule" yaml:"allow_coordinator_out_of_schedule"`
	AllowManagerOutOfSchedule     bool      `json:"allow_manager_out_of_schedule" yaml:"allow_manager_out_of_schedule"`
	UpdatedAt                     time.Time `json:"updated_at" yaml:"-"`
}

// Default returns the built-in policy used when no row exists yet.
func Default() SystemSettings {
	return SystemSettings{
		AllowAdminOutOfSchedule:       true,
		AllowHROutOfSchedule:          true,
		AllowSupervisorOutOfSchedule:  true,
		AllowCoordinatorOutOfSchedule: true,
		AllowManagerOutOfSchedule:     false,
	}
}

// AllowsOutOfSchedule reports whether role has blanket permission to punch
// outside its window. Roles without a flag never do.
func (s SystemSettings) AllowsOutOfSchedule(role user.Role) bool {
	switch role {
	case user.RoleAdmin:
		return s.AllowAdminOutOfSchedule
	case user.RoleHR:
		return s.AllowHROutOfSchedule
	case user.RoleSupervisor:
		return s.AllowSupervisorOutOfSchedule
	case user.RoleCoordinator:
		return s.AllowCoordinatorOutOfSchedule
	case user.RoleManager:
		return s.AllowManagerOutOfSchedule
	default:
		return false
	}
}
