package schedule

import "errors"

var (
	ErrWorkScheduleNotFound = errors.New("work schedule not found")
	ErrInvalidClock         = errors.New("time must be in HH:MM or HH:MM:SS format")
	ErrInvalidDayRules      = errors.New("day rules must be keyed by weekday 0-6")
)
