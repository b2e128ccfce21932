// Package daterange builds the calendar windows used by listings, the
// dashboard and hours reprocessing. All windows are inclusive on both
// ends and the end instant is one millisecond before the next window.
package daterange

import (
	"errors"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	Day   = "day"
	Week  = "week"
	Month = "month"
)

var (
	ErrInvalidRangeName = errors.New("range must be one of day, week or month")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrIncompleteRange  = errors.New("start and end must be provided together")
	ErrStartAfterEnd    = errors.New("start must not be after end")
)

type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside r, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func DayOf(t time.Time) Range {
	return Range{Start: StartOfDay(t), End: EndOfDay(t)}
}

// WeekOf returns the Monday through Sunday week containing t.
func WeekOf(t time.Time) Range {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6
	}
	start := StartOfDay(t).AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Millisecond)}
}

func MonthOf(t time.Time) Range {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Millisecond)}
}

// Named resolves "day", "week" or "month" around ref. An empty name means day.
func Named(name string, ref time.Time) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Day:
		return DayOf(ref), nil
	case Week:
		return WeekOf(ref), nil
	case Month:
		return MonthOf(ref), nil
	default:
		return Range{}, ErrInvalidRangeName
	}
}

// ParseDate parses a YYYY-MM-DD value as midnight in loc. An empty value
// yields fallback.
func ParseDate(value string, loc *time.Location, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback.In(loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseCustom builds a range from two YYYY-MM-DD values, floored to the
// start of the first day and ceiled to the end of the last. ok is false
// when neither value is set.
func ParseCustom(start, end string, loc *time.Location) (r Range, ok bool, err error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return Range{}, false, nil
	}
	if start == "" || end == "" {
		return Range{}, false, ErrIncompleteRange
	}

	s, err := time.ParseInLocation(DateLayout, start, loc)
	if err != nil {
		return Range{}, false, ErrInvalidDate
	}
	e, err := time.ParseInLocation(DateLayout, end, loc)
	if err != nil {
		return Range{}, false, ErrInvalidDate
	}
	if s.After(e) {
		return Range{}, false, ErrStartAfterEnd
	}

	return Range{Start: StartOfDay(s), End: EndOfDay(e)}, true, nil
}

// DayKey formats t's calendar date in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
