package user

type Permission string

const (
	// Self service
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Administration
	PermissionAttendanceManage Permission = "attendance.manage"
	PermissionDashboardView    Permission = "dashboard.view"
	PermissionHoursReprocess   Permission = "hours.reprocess"
	PermissionSettingsManage   Permission = "settings.manage"
	PermissionOverrideGrant    Permission = "override.grant"

	// Employee data
	PermissionLunchManage Permission = "employee.lunch_manage"
)

var selfService = []Permission{
	PermissionAttendanceCreate,
	PermissionAttendanceViewOwn,
}

var administration = []Permission{
	PermissionAttendanceManage,
	PermissionDashboardView,
	PermissionHoursReprocess,
	PermissionSettingsManage,
	PermissionOverrideGrant,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:       append(append(append([]Permission{}, selfService...), administration...), PermissionLunchManage),
	RoleHR:          append(append([]Permission{}, selfService...), administration...),
	RoleSupervisor:  append(append([]Permission{}, selfService...), administration...),
	RoleCoordinator: append(append([]Permission{}, selfService...), administration...),
	RoleManager:     selfService,
	RoleEmployee:    selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
