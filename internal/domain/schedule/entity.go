package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

type PatternType string

const (
	PatternFiveByTwo PatternType = "5x2"
	PatternSixByOne  PatternType = "6x1"
	PatternCustom    PatternType = "custom"
)

var PatternTypeValues = []string{
	string(PatternFiveByTwo),
	string(PatternSixByOne),
	string(PatternCustom),
}

type WorkSchedule struct {
	ID               string
	Name             string
	Type             PatternType
	WorkDays         []time.Weekday
	StartTime        string
	EndTime          string
	LunchStart       *string
	LunchEnd         *string
	ToleranceMinutes int
	WeeklyHours      decimal.Decimal
	DayRules         DayRules
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorksOn reports whether day is one of the schedule's work days.
func (s *WorkSchedule) WorksOn(day time.Weekday) bool {
	for _, d := range s.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// Tolerance returns the punch tolerance, clamped to zero.
func (s *WorkSchedule) Tolerance() int {
	if s.ToleranceMinutes < 0 {
		return 0
	}
	return s.ToleranceMinutes
}

// DayRule is a sparse override of the base times for one weekday.
type DayRule struct {
	StartTime  *string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	LunchStart *string `json:"lunch_start,omitempty" yaml:"lunch_start,omitempty"`
	LunchEnd   *string `json:"lunch_end,omitempty" yaml:"lunch_end,omitempty"`
}

// LunchOverride is an employee's personal lunch window. Only non-empty
// values take effect.
type LunchOverride struct {
	Start *string
	End   *string
}

// EffectiveRule is the merged set of times for one employee on one weekday.
// Empty strings mean "not configured".
type EffectiveRule struct {
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}
