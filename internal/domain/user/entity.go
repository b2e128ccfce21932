package user

import "strings"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHR          Role = "hr"
	RoleSupervisor  Role = "supervisor"
	RoleCoordinator Role = "coordinator"
	RoleManager     Role = "manager"
	RoleEmployee    Role = "employee"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleHR),
	string(RoleSupervisor),
	string(RoleCoordinator),
	string(RoleManager),
	string(RoleEmployee),
}

// ParseRole normalizes s into a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleHR, RoleSupervisor, RoleCoordinator, RoleManager, RoleEmployee:
		return r, nil
	}
	return "", ErrInvalidRole
}

// Identity is the authenticated caller as carried by the access token.
type Identity struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// IsAdmin checks if the caller is a system administrator
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManageAttendance checks if the caller may use the administrative surfaces
func (i Identity) CanManageAttendance() bool {
	return HasPermission(i.Role, PermissionAttendanceManage)
}
