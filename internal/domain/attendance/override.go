package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
)

// PrivilegedRoleReason is recorded on punches let through by role policy.
const PrivilegedRoleReason = "released by privileged role policy"

type OverrideSource string

const (
	OverrideNone           OverrideSource = ""
	OverridePrivilegedRole OverrideSource = "privileged_role"
	OverrideStandingGrant  OverrideSource = "standing_grant"
)

type OverrideDecision struct {
	Allowed bool
	Source  OverrideSource
	By      *string
	Reason  *string
}

// Applied reports whether the punch went through because of an override.
func (d OverrideDecision) Applied() bool {
	return d.Allowed && d.Source != OverrideNone
}

// AuthorizeOverride decides whether a punch that failed its window check
// may be recorded anyway. The role policy is consulted first, then the
// employee's standing grant; the first match wins and neither depends on
// the other.
func AuthorizeOverride(
	role user.Role,
	emp *employee.Employee,
	check WindowCheck,
	policy settings.SystemSettings,
	actingUserID string,
	now time.Time,
) OverrideDecision {
	if check.Admissible() {
		return OverrideDecision{Allowed: true, Source: OverrideNone}
	}

	if policy.AllowsOutOfSchedule(role) {
		by := actingUserID
		reason := PrivilegedRoleReason
		return OverrideDecision{Allowed: true, Source: OverridePrivilegedRole, By: &by, Reason: &reason}
	}

	if emp != nil && emp.PunchOverride.ActiveAt(now) {
		by := emp.PunchOverride.GrantedBy
		return OverrideDecision{Allowed: true, Source: OverrideStandingGrant, By: &by, Reason: emp.PunchOverride.Reason}
	}

	return OverrideDecision{Allowed: false}
}
