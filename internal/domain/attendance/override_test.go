package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeOverride(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	outside := WindowCheck{Status: WindowOutside, Kind: PunchEntry, Tolerance: 10, Window: &Window{Min: 470, Max: 490}}
	within := WindowCheck{Status: WindowWithin, Kind: PunchEntry}

	grant := &employee.PunchOverrideGrant{Until: now.Add(time.Hour), GrantedBy: "hr-user", Reason: strPtr("doctor")}
	expired := &employee.PunchOverrideGrant{Until: now.Add(-time.Second), GrantedBy: "hr-user"}
	exact := &employee.PunchOverrideGrant{Until: now, GrantedBy: "hr-user"}

	tests := []struct {
		name       string
		role       user.Role
		grant      *employee.PunchOverrideGrant
		check      WindowCheck
		wantAllow  bool
		wantSource OverrideSource
		wantBy     string
	}{
		{"admissible needs nothing", user.RoleEmployee, nil, within, true, OverrideNone, ""},
		{"privileged role", user.RoleAdmin, nil, outside, true, OverridePrivilegedRole, "acting-user"},
		{"role wins over grant", user.RoleHR, grant, outside, true, OverridePrivilegedRole, "acting-user"},
		{"manager disabled by default", user.RoleManager, nil, outside, false, OverrideNone, ""},
		{"standing grant", user.RoleEmployee, grant, outside, true, OverrideStandingGrant, "hr-user"},
		{"grant at expiry instant", user.RoleEmployee, exact, outside, true, OverrideStandingGrant, "hr-user"},
		{"expired grant", user.RoleEmployee, expired, outside, false, OverrideNone, ""},
		{"nothing applies", user.RoleEmployee, nil, outside, false, OverrideNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := &employee.Employee{ID: "emp-1", PunchOverride: tt.grant}
			d := AuthorizeOverride(tt.role, emp, tt.check, settings.Default(), "acting-user", now)

			assert.Equal(t, tt.wantAllow, d.Allowed)
			assert.Equal(t, tt.wantSource, d.Source)
			if tt.wantBy != "" {
				require.NotNil(t, d.By)
				assert.Equal(t, tt.wantBy, *d.By)
			} else {
				assert.Nil(t, d.By)
			}
		})
	}
}

func TestAuthorizeOverride_Attribution(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	outside := WindowCheck{Status: WindowDayOutsideSchedule}

	d := AuthorizeOverride(user.RoleCoordinator, &employee.Employee{}, outside, settings.Default(), "u-1", now)
	require.NotNil(t, d.Reason)
	assert.Equal(t, PrivilegedRoleReason, *d.Reason)
	assert.True(t, d.Applied())

	policy := settings.Default()
	policy.AllowCoordinatorOutOfSchedule = false
	emp := &employee.Employee{PunchOverride: &employee.PunchOverrideGrant{Until: now.Add(time.Minute), GrantedBy: "u-2", Reason: strPtr("field visit")}}

	d = AuthorizeOverride(user.RoleCoordinator, emp, outside, policy, "u-1", now)
	assert.Equal(t, OverrideStandingGrant, d.Source)
	assert.Equal(t, "field visit", *d.Reason)
}
