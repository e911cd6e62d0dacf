package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:30", 0, false},
		{"09-30", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.minutes, got, tc.in)
		} else {
			assert.ErrorIs(t, err, ErrBadClock, tc.in)
		}
	}
}

func TestParseClockRange(t *testing.T) {
	s, e, err := ParseClockRange("09:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, 540, s)
	assert.Equal(t, 720, e)

	_, _, err = ParseClockRange("12:00", "09:00")
	assert.ErrorIs(t, err, ErrBadClock)

	_, _, err = ParseClockRange("09:00", "09:00")
	assert.ErrorIs(t, err, ErrBadClock)
}

func TestOverlapsAndContains(t *testing.T) {
	// Adjacent windows share an endpoint but do not overlap.
	assert.False(t, Overlaps(540, 600, 600, 660))
	assert.True(t, Overlaps(540, 600, 570, 630))
	assert.True(t, Overlaps(540, 720, 570, 600))

	assert.True(t, Contains(540, 720, 540, 600))
	assert.True(t, Contains(540, 720, 600, 720))
	assert.False(t, Contains(540, 720, 510, 600))
	assert.False(t, Contains(540, 720, 660, 750))
}

func TestParseWeekday(t *testing.T) {
	wd, ok := ParseWeekday(" Monday ")
	require.True(t, ok)
	assert.Equal(t, time.Monday, wd)
	assert.Equal(t, "monday", WeekdayName(wd))

	_, ok = ParseWeekday("someday")
	assert.False(t, ok)
}
