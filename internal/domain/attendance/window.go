package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
)

type WindowStatus int

const (
	// WindowWithin means the punch falls inside the tolerance window.
	WindowWithin WindowStatus = iota
	// WindowNoSchedule means the employee has no schedule; never blocks.
	WindowNoSchedule
	// WindowTimeNotConfigured means the target time for the punch kind is
	// unset or malformed; never blocks.
	WindowTimeNotConfigured
	// WindowDayOutsideSchedule means the weekday is not a work day.
	WindowDayOutsideSchedule
	// WindowOutside means the punch misses the tolerance window.
	WindowOutside
)

func (s WindowStatus) String() string {
	switch s {
	case WindowWithin:
		return "within"
	case WindowNoSchedule:
		return "no_schedule"
	case WindowTimeNotConfigured:
		return "time_not_configured"
	case WindowDayOutsideSchedule:
		return "day_outside_schedule"
	case WindowOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Window is an inclusive minute-of-day interval.
type Window struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (w Window) Contains(minute int) bool {
	return minute >= w.Min && minute <= w.Max
}

type WindowCheck struct {
	Status    WindowStatus
	Kind      PunchKind
	Tolerance int
	Window    *Window
}

// Admissible reports whether the punch may proceed without an override.
func (c WindowCheck) Admissible() bool {
	switch c.Status {
	case WindowWithin, WindowNoSchedule, WindowTimeNotConfigured:
		return true
	default:
		return false
	}
}

// Reason describes a rejection. It is empty for admissible checks.
func (c WindowCheck) Reason() string {
	switch c.Status {
	case WindowDayOutsideSchedule:
		return "day outside schedule"
	case WindowOutside:
		return fmt.Sprintf("outside the allowed window (%d min) for %s", c.Tolerance, c.Kind.Label())
	default:
		return ""
	}
}

// Warning is the advisory note for admissible checks that could not be
// evaluated.
func (c WindowCheck) Warning() string {
	switch c.Status {
	case WindowNoSchedule:
		return "no schedule configured"
	case WindowTimeNotConfigured:
		return "time not configured for " + c.Kind.Label()
	default:
		return ""
	}
}

// TargetTime picks the rule field a punch kind is checked against.
func TargetTime(rule *schedule.EffectiveRule, kind PunchKind) string {
	if rule == nil {
		return ""
	}
	switch kind {
	case PunchEntry:
		return rule.StartTime
	case PunchLunchStart:
		return rule.LunchStart
	case PunchLunchEnd:
		return rule.LunchEnd
	case PunchExit:
		return rule.EndTime
	default:
		return ""
	}
}

// CheckWindow decides whether a punch of kind at the given wall-clock
// instant is inside the schedule's tolerance window. Only the time of day
// of at is compared; its weekday selects the rule.
func CheckWindow(s *schedule.WorkSchedule, kind PunchKind, at time.Time, lunch schedule.LunchOverride) WindowCheck {
	check := WindowCheck{Kind: kind}
	if s == nil {
		check.Status = WindowNoSchedule
		return check
	}

	check.Tolerance = s.Tolerance()

	day := at.Weekday()
	if !s.WorksOn(day) {
		check.Status = WindowDayOutsideSchedule
		return check
	}

	rule := schedule.Resolve(s, day, lunch)
	target, ok := schedule.ParseClock(TargetTime(rule, kind))
	if !ok {
		check.Status = WindowTimeNotConfigured
		return check
	}

	window := Window{Min: target - check.Tolerance, Max: target + check.Tolerance}
	check.Window = &window

	if window.Contains(schedule.MinuteOfDay(at)) {
		check.Status = WindowWithin
	} else {
		check.Status = WindowOutside
	}
	return check
}

// WindowViolationError carries a rejected window check to the caller.
type WindowViolationError struct {
	Check WindowCheck
}

func (e *WindowViolationError) Error() string {
	return e.Check.Reason()
}

func (e *WindowViolationError) Unwrap() error {
	return ErrOutsideSchedule
}
