package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Resolve merges the base schedule, the weekday override and the personal
// lunch override into one rule. It returns nil when s is nil. The merged
// times are not checked for consistency.
func Resolve(s *WorkSchedule, day time.Weekday, lunch LunchOverride) *EffectiveRule {
	if s == nil {
		return nil
	}

	rule := &EffectiveRule{
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		LunchStart: deref(s.LunchStart),
		LunchEnd:   deref(s.LunchEnd),
	}

	if dr, ok := s.DayRules.For(day); ok {
		if dr.StartTime != nil {
			rule.StartTime = *dr.StartTime
		}
		if dr.EndTime != nil {
			rule.EndTime = *dr.EndTime
		}
		if dr.LunchStart != nil {
			rule.LunchStart = *dr.LunchStart
		}
		if dr.LunchEnd != nil {
			rule.LunchEnd = *dr.LunchEnd
		}
	}

	if v := deref(lunch.Start); strings.TrimSpace(v) != "" {
		rule.LunchStart = v
	}
	if v := deref(lunch.End); strings.TrimSpace(v) != "" {
		rule.LunchEnd = v
	}

	return rule
}

// ExpectedMinutes is the scheduled work time for rule: end minus start,
// minus lunch when both lunch bounds parse, floored at zero. ok is false
// when start or end is missing or malformed.
func ExpectedMinutes(rule *EffectiveRule) (minutes int, ok bool) {
	if rule == nil {
		return 0, false
	}
	start, okStart := ParseClock(rule.StartTime)
	end, okEnd := ParseClock(rule.EndTime)
	if !okStart || !okEnd {
		return 0, false
	}

	lunch := 0
	ls, okLS := ParseClock(rule.LunchStart)
	le, okLE := ParseClock(rule.LunchEnd)
	if okLS && okLE {
		lunch = le - ls
	}

	return max(end-start-lunch, 0), true
}

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes after midnight.
// Seconds are ignored.
func ParseClock(value string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		if s, err := strconv.Atoi(parts[2]); err != nil || s < 0 || s > 59 {
			return 0, false
		}
	}

	return h*60 + m, true
}

// MinuteOfDay returns t's wall-clock minutes after midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders minutes after midnight as "HH:MM".
func FormatMinutes(m int) string {
	return time.Date(0, 1, 1, 0, m, 0, 0, time.UTC).Format("15:04")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
