package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf_StartsMonday(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		ref  time.Time
		want string
	}{
		{"monday", time.Date(2024, 3, 4, 10, 0, 0, 0, loc), "2024-03-04"},
		{"wednesday", time.Date(2024, 3, 6, 10, 0, 0, 0, loc), "2024-03-04"},
		{"sunday", time.Date(2024, 3, 10, 23, 0, 0, 0, loc), "2024-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := WeekOf(tt.ref)
			assert.Equal(t, tt.want, r.Start.Format(DateLayout))
			assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, int(999*time.Millisecond), loc), r.End)
		})
	}
}

func TestMonthOf(t *testing.T) {
	r := MonthOf(time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, "2024-02-29", r.End.Format(DateLayout))
	assert.True(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNamed(t *testing.T) {
	ref := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	r, err := Named("", ref)
	require.NoError(t, err)
	assert.Equal(t, DayOf(ref), r)

	_, err = Named("year", ref)
	assert.ErrorIs(t, err, ErrInvalidRangeName)
}

func TestParseCustom(t *testing.T) {
	loc := time.UTC

	_, ok, err := ParseCustom("", "", loc)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseCustom("2024-03-01", "", loc)
	assert.ErrorIs(t, err, ErrIncompleteRange)

	_, _, err = ParseCustom("2024-03-05", "2024-03-01", loc)
	assert.ErrorIs(t, err, ErrStartAfterEnd)

	_, _, err = ParseCustom("03/01/2024", "2024-03-05", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)

	r, ok, err := ParseCustom("2024-03-01", "2024-03-01", loc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DayOf(time.Date(2024, 3, 1, 12, 0, 0, 0, loc)), r)
}
