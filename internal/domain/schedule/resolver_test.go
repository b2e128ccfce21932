package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func officeSchedule() *WorkSchedule {
	return &WorkSchedule{
		ID:               "ws-1",
		Name:             "Office",
		Type:             PatternFiveByTwo,
		WorkDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartTime:        "08:00",
		EndTime:          "17:00",
		LunchStart:       strPtr("12:00"),
		LunchEnd:         strPtr("13:00"),
		ToleranceMinutes: 10,
	}
}

func TestResolve_NilSchedule(t *testing.T) {
	assert.Nil(t, Resolve(nil, time.Monday, LunchOverride{}))
}

func TestResolve_BaseOnly(t *testing.T) {
	rule := Resolve(officeSchedule(), time.Monday, LunchOverride{})
	require.NotNil(t, rule)
	assert.Equal(t, EffectiveRule{StartTime: "08:00", EndTime: "17:00", LunchStart: "12:00", LunchEnd: "13:00"}, *rule)
}

func TestResolve_DayRuleOverlaysPresentFields(t *testing.T) {
	s := officeSchedule()
	s.DayRules.Set(time.Friday, &DayRule{EndTime: strPtr("16:00"), LunchStart: strPtr("11:30")})

	rule := Resolve(s, time.Friday, LunchOverride{})
	assert.Equal(t, "08:00", rule.StartTime)
	assert.Equal(t, "16:00", rule.EndTime)
	assert.Equal(t, "11:30", rule.LunchStart)
	assert.Equal(t, "13:00", rule.LunchEnd)

	monday := Resolve(s, time.Monday, LunchOverride{})
	assert.Equal(t, "17:00", monday.EndTime)
}

func TestResolve_PersonalLunchAlwaysWins(t *testing.T) {
	s := officeSchedule()
	s.DayRules.Set(time.Wednesday, &DayRule{LunchStart: strPtr("11:00"), LunchEnd: strPtr("11:45")})

	tests := []struct {
		name      string
		lunch     LunchOverride
		wantStart string
		wantEnd   string
	}{
		{"both", LunchOverride{Start: strPtr("13:00"), End: strPtr("14:00")}, "13:00", "14:00"},
		{"start only", LunchOverride{Start: strPtr("13:00")}, "13:00", "11:45"},
		{"empty values ignored", LunchOverride{Start: strPtr(""), End: strPtr("  ")}, "11:00", "11:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := Resolve(s, time.Wednesday, tt.lunch)
			assert.Equal(t, tt.wantStart, rule.LunchStart)
			assert.Equal(t, tt.wantEnd, rule.LunchEnd)
		})
	}
}

func TestExpectedMinutes(t *testing.T) {
	tests := []struct {
		name   string
		rule   *EffectiveRule
		want   int
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"with lunch", &EffectiveRule{StartTime: "08:00", EndTime: "17:00", LunchStart: "12:00", LunchEnd: "13:00"}, 480, true},
		{"no lunch", &EffectiveRule{StartTime: "08:00:00", EndTime: "12:00:00"}, 240, true},
		{"half lunch ignored", &EffectiveRule{StartTime: "08:00", EndTime: "17:00", LunchStart: "12:00"}, 540, true},
		{"missing end", &EffectiveRule{StartTime: "08:00"}, 0, false},
		{"inverted clamps", &EffectiveRule{StartTime: "17:00", EndTime: "08:00"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpectedMinutes(tt.rule)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"08:00", 480, true},
		{"8:05", 485, true},
		{"23:59:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
		{"12", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayRules_JSON(t *testing.T) {
	var rules DayRules
	err := json.Unmarshal([]byte(`{"1":{"start_time":"09:00"},"9":{"start_time":"10:00"},"x":{}}`), &rules)
	require.NoError(t, err)

	rule, ok := rules.For(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "09:00", *rule.StartTime)

	_, ok = rules.For(time.Tuesday)
	assert.False(t, ok)

	data, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"start_time":"09:00"}}`, string(data))
}

func TestWorkSchedule_Tolerance(t *testing.T) {
	s := officeSchedule()
	s.ToleranceMinutes = -5
	assert.Equal(t, 0, s.Tolerance())
	assert.True(t, s.WorksOn(time.Monday))
	assert.False(t, s.WorksOn(time.Sunday))
}
