package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// WorkedMinutes measures one day of punches: first entry to first exit,
// minus the first lunch span when both lunch punches exist. ok is false
// when the day has no entry or no exit. Negative spans clamp to zero.
func WorkedMinutes(records []TimeRecord, loc *time.Location) (minutes int, ok bool) {
	first := firstByKind(records)

	entry, hasEntry := first[PunchEntry]
	exit, hasExit := first[PunchExit]
	if !hasEntry || !hasExit {
		return 0, false
	}

	lunch := 0
	ls, hasLS := first[PunchLunchStart]
	le, hasLE := first[PunchLunchEnd]
	if hasLS && hasLE {
		lunch = max(minuteIn(le, loc)-minuteIn(ls, loc), 0)
	}

	return max(minuteIn(exit, loc)-minuteIn(entry, loc)-lunch, 0), true
}

// DayBalance returns worked minus expected minutes for one day of records.
// ok is false when either side cannot be computed.
func DayBalance(records []TimeRecord, s *schedule.WorkSchedule, lunch schedule.LunchOverride, loc *time.Location) (minutes int, ok bool) {
	if len(records) == 0 || s == nil {
		return 0, false
	}

	day := records[0].Timestamp.In(loc).Weekday()
	expected, ok := schedule.ExpectedMinutes(schedule.Resolve(s, day, lunch))
	if !ok {
		return 0, false
	}
	worked, ok := WorkedMinutes(records, loc)
	if !ok {
		return 0, false
	}
	return worked - expected, true
}

// HoursFromMinutes converts minutes into hours rounded to two decimals.
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
}

func firstByKind(records []TimeRecord) map[PunchKind]time.Time {
	first := make(map[PunchKind]time.Time, 4)
	for _, r := range records {
		if t, seen := first[r.Kind]; !seen || r.Timestamp.Before(t) {
			first[r.Kind] = r.Timestamp
		}
	}
	return first
}

func minuteIn(t time.Time, loc *time.Location) int {
	return schedule.MinuteOfDay(t.In(loc))
}
