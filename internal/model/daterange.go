package model

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is a half-open interval of calendar days [Entry, Exit).
// A guest leaving on day D and another arriving on day D do not overlap.
//
// Calendar days are represented as midnight UTC so that values read from
// DATE columns and values parsed from requests compare directly.
type DateRange struct {
	Entry time.Time
	Exit  time.Time
}

// Overlaps reports whether r and o share at least one night.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Entry.Before(o.Exit) && r.Exit.After(o.Entry)
}

// Valid reports whether the exit day is strictly after the entry day.
func (r DateRange) Valid() bool {
	return r.Exit.After(r.Entry)
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	if !r.Valid() {
		return 0
	}
	return int(r.Exit.Sub(r.Entry).Hours() / 24)
}

// CalendarDay returns the calendar day t falls on in loc, as midnight UTC.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar day.  It accepts "2006-01-02" and full
// RFC3339 timestamps; for the latter the day is taken in the timestamp's
// own offset and the time of day is dropped.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrValidation)
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
