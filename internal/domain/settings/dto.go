package settings

import "github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"

// UpdateSettingsRequest patches only the flags that are present.
type UpdateSettingsRequest struct {
	AllowAdminOutOfSchedule       *bool `json:"allow_admin_out_of_schedule"`
	AllowHROutOfSchedule          *bool `json:"allow_hr_out_of_schedule"`
	AllowSupervisorOutOfSchedule  *bool `json:"allow_supervisor_out_of_schedule"`
	AllowCoordinatorOutOfSchedule *bool `json:"allow_coordinator_out_of_schedule"`
	AllowManagerOutOfSchedule     *bool `json:"allow_manager_out_of_schedule"`
}

func (r *UpdateSettingsRequest) Validate() error {
	if r.AllowAdminOutOfSchedule == nil &&
		r.AllowHROutOfSchedule == nil &&
		r.AllowSupervisorOutOfSchedule == nil &&
		r.AllowCoordinatorOutOfSchedule == nil &&
		r.AllowManagerOutOfSchedule == nil {
		return validator.ValidationErrors{{
			Field:   "body",
			Message: "at least one setting must be provided",
		}}
	}
	return nil
}

// Apply returns s with the supplied flags replaced.
func (r UpdateSettingsRequest) Apply(s SystemSettings) SystemSettings {
	if r.AllowAdminOutOfSchedule != nil {
		s.AllowAdminOutOfSchedule = *r.AllowAdminOutOfSchedule
	}
	if r.AllowHROutOfSchedule != nil {
		s.AllowHROutOfSchedule = *r.AllowHROutOfSchedule
	}
	if r.AllowSupervisorOutOfSchedule != nil {
		s.AllowSupervisorOutOfSchedule = *r.AllowSupervisorOutOfSchedule
	}
	if r.AllowCoordinatorOutOfSchedule != nil {
		s.AllowCoordinatorOutOfSchedule = *r.AllowCoordinatorOutOfSchedule
	}
	if r.AllowManagerOutOfSchedule != nil {
		s.AllowManagerOutOfSchedule = *r.AllowManagerOutOfSchedule
	}
	return s
}
