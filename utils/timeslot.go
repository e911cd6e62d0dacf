package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrBadClock = errors.New("time must be HH:MM in 24-hour format")

// ParseClock converts a 24-hour "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrBadClock
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrBadClock
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, ErrBadClock
	}
	return hours*60 + minutes, nil
}

// ParseClockRange parses a start/end pair and enforces start < end.
func ParseClockRange(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, ErrBadClock
	}
	return s, e, nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Adjacent intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether [innerStart,innerEnd) fits inside [outerStart,outerEnd).
func Contains(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a case-insensitive weekday name to time.Weekday.
func ParseWeekday(day string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(day))]
	return wd, ok
}

// WeekdayName returns the lowercase name slots are stored under.
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}
