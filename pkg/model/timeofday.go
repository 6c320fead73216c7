package model

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DateLayout is the calendar-date wire format.
	DateLayout = "2006-01-02"
)

var (
	timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	dateRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsTimeOfDay reports whether s is a valid HH:MM time (00:00-23:59).
func IsTimeOfDay(s string) bool {
	return timeOfDayRegex.MatchString(s)
}

// IsDate reports whether s is a valid YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MinutesOfDay converts an HH:MM string to minutes since midnight.
// Minute resolution is all the booking model needs; comparing minutes
// keeps the interval arithmetic free of time-zone concerns.
func MinutesOfDay(s string) (int, error) {
	if !IsTimeOfDay(s) {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, nil
}

// CombineDateTime resolves a date and an HH:MM time to an instant in loc.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, timeOfDay, err)
	}
	return t, nil
}
