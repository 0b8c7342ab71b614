package model

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(a, b string) DateRange { return DateRange{Entry: day(a), Exit: day(b)} }

func TestDateRangeOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"touching after", rng("2030-05-01", "2030-05-03"), rng("2030-05-03", "2030-05-05"), false},
		{"touching before", rng("2030-05-03", "2030-05-05"), rng("2030-05-01", "2030-05-03"), false},
		{"one night shared", rng("2030-05-01", "2030-05-04"), rng("2030-05-03", "2030-05-05"), true},
		{"contained", rng("2030-05-01", "2030-05-10"), rng("2030-05-03", "2030-05-04"), true},
		{"identical", rng("2030-05-01", "2030-05-02"), rng("2030-05-01", "2030-05-02"), true},
		{"disjoint", rng("2030-05-01", "2030-05-02"), rng("2030-06-01", "2030-06-02"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDateRangeValidAndNights(t *testing.T) {
	if r := rng("2030-05-01", "2030-05-01"); r.Valid() || r.Nights() != 0 {
		t.Errorf("same-day range should be invalid with 0 nights")
	}
	if r := rng("2030-05-01", "2030-05-04"); !r.Valid() || r.Nights() != 3 {
		t.Errorf("nights = %d", r.Nights())
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2030-05-01")
	if err != nil || !got.Equal(day("2030-05-01")) {
		t.Fatalf("plain date: %v %v", got, err)
	}
	got, err = ParseDate("2030-05-01T23:30:00-06:00")
	if err != nil || !got.Equal(day("2030-05-01")) {
		t.Fatalf("rfc3339: %v %v", got, err)
	}
	for _, in := range []string{"", "01/05/2030", "tomorrow"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q) err = %v, want ErrValidation", in, err)
		}
	}
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)
	now := time.Date(2030, 5, 2, 3, 0, 0, 0, time.UTC) // 21:00 on May 1st at UTC-6
	if got := CalendarDay(now, loc); !got.Equal(day("2030-05-01")) {
		t.Errorf("CalendarDay = %v", got)
	}
	if got := CalendarDay(now, nil); !got.Equal(day("2030-05-02")) {
		t.Errorf("CalendarDay nil loc = %v", got)
	}
}
