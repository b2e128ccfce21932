package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleAdmin, PermissionLunchManage, true},
		{RoleHR, PermissionLunchManage, false},
		{RoleHR, PermissionHoursReprocess, true},
		{RoleCoordinator, PermissionSettingsManage, true},
		{RoleManager, PermissionDashboardView, false},
		{RoleEmployee, PermissionAttendanceCreate, true},
		{Role("ghost"), PermissionAttendanceCreate, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.permission), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" HR ")
	assert.NoError(t, err)
	assert.Equal(t, RoleHR, r)

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
