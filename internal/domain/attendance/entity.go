package attendance

import (
	"strings"
	"time"
)

type PunchKind string

const (
	PunchEntry      PunchKind = "entry"
	PunchLunchStart PunchKind = "lunch_start"
	PunchLunchEnd   PunchKind = "lunch_end"
	PunchExit       PunchKind = "exit"
)

var PunchKindValues = []string{
	string(PunchEntry),
	string(PunchLunchStart),
	string(PunchLunchEnd),
	string(PunchExit),
}

func ParsePunchKind(s string) (PunchKind, error) {
	k := PunchKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case PunchEntry, PunchLunchStart, PunchLunchEnd, PunchExit:
		return k, nil
	}
	return "", ErrInvalidPunchKind
}

// Label is the human-readable name used in messages.
func (k PunchKind) Label() string {
	switch k {
	case PunchEntry:
		return "entry"
	case PunchLunchStart:
		return "lunch start"
	case PunchLunchEnd:
		return "lunch end"
	case PunchExit:
		return "exit"
	default:
		return "punch"
	}
}

type TimeRecord struct {
	ID               string
	EmployeeID       string
	Kind             PunchKind
	Timestamp        time.Time
	Latitude         *float64
	Longitude        *float64
	WorkLocationID   *string
	IsWithinRadius   bool
	DistanceMeters   *int
	ScheduleOverride bool
	OverrideBy       *string
	OverrideReason   *string
	ConfirmationCode string
	DeviceInfo       DeviceInfo
	CreatedAt        time.Time

	// Joins
	EmployeeName *string
}

// DeviceInfo is caller metadata stored verbatim with the record.
type DeviceInfo struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}
