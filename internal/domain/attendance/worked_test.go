package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func punch(kind PunchKind, hour, minute int) TimeRecord {
	return TimeRecord{Kind: kind, Timestamp: monday(hour, minute)}
}

func TestWorkedMinutes(t *testing.T) {
	tests := []struct {
		name    string
		records []TimeRecord
		want    int
		wantOK  bool
	}{
		{"full day", []TimeRecord{
			punch(PunchEntry, 8, 0), punch(PunchLunchStart, 12, 0), punch(PunchLunchEnd, 13, 0), punch(PunchExit, 17, 0),
		}, 480, true},
		{"no lunch punches", []TimeRecord{punch(PunchEntry, 8, 0), punch(PunchExit, 17, 0)}, 540, true},
		{"half lunch ignored", []TimeRecord{punch(PunchEntry, 8, 0), punch(PunchLunchStart, 12, 0), punch(PunchExit, 17, 0)}, 540, true},
		{"first exit used", []TimeRecord{punch(PunchEntry, 8, 0), punch(PunchExit, 16, 0), punch(PunchExit, 18, 0)}, 480, true},
		{"inverted lunch clamps", []TimeRecord{
			punch(PunchEntry, 8, 0), punch(PunchLunchStart, 13, 0), punch(PunchLunchEnd, 12, 0), punch(PunchExit, 17, 0),
		}, 540, true},
		{"exit before entry clamps", []TimeRecord{punch(PunchEntry, 17, 0), punch(PunchExit, 8, 0)}, 0, true},
		{"missing exit", []TimeRecord{punch(PunchEntry, 8, 0)}, 0, false},
		{"missing entry", []TimeRecord{punch(PunchExit, 17, 0)}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WorkedMinutes(tt.records, time.UTC)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayBalance(t *testing.T) {
	s := officeSchedule()
	day := []TimeRecord{
		punch(PunchEntry, 8, 0), punch(PunchLunchStart, 12, 0), punch(PunchLunchEnd, 13, 0), punch(PunchExit, 17, 30),
	}

	got, ok := DayBalance(day, s, schedule.LunchOverride{}, time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 30, got)

	_, ok = DayBalance(day, nil, schedule.LunchOverride{}, time.UTC)
	assert.False(t, ok)

	_, ok = DayBalance(day[:1], s, schedule.LunchOverride{}, time.UTC)
	assert.False(t, ok)
}

func TestHoursFromMinutes(t *testing.T) {
	assert.Equal(t, "0.5", HoursFromMinutes(30).String())
	assert.Equal(t, "-1.33", HoursFromMinutes(-80).String())
	assert.Equal(t, "0.17", HoursFromMinutes(10).String())
	assert.True(t, HoursFromMinutes(0).IsZero())
}
