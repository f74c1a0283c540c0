package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rounding selects how a partial month is counted by MonthsBetween
type Rounding int

const (
	// RoundCeil counts a partial month as a full month
	RoundCeil Rounding = iota
	// RoundFloor counts full months only
	RoundFloor
)

// Midday returns t at 12:00 local time on the same calendar day
func Midday(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// MonthsBetween returns the calendar month count from 'from' to 'to'.
// Both instants are normalized to midday in from's location. In RoundCeil mode a
// trailing partial month counts when to.Day() > from.Day(); in RoundFloor mode a
// month is dropped when to.Day() < from.Day(). Returns 0 when to <= from.
func MonthsBetween(from, to time.Time, mode Rounding) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	d1 := Midday(from)
	d2 := Midday(to.In(from.Location()))
	if !d2.After(d1) {
		return 0
	}

	m := (d2.Year()-d1.Year())*12 + int(d2.Month()) - int(d1.Month())
	switch mode {
	case RoundFloor:
		if d2.Day() < d1.Day() {
			m--
		}
	case RoundCeil:
		if d2.Day() > d1.Day() {
			m++
		}
	}
	if m < 0 {
		return 0
	}
	return m
}

// AddMonths returns t shifted by n calendar months, clamping the day to the target month length
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

var dayFirstPattern = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate accepts an ISO-8601 date or timestamp, a day-first DD/MM/YYYY date
// (also with '.' or '-' separators), or epoch milliseconds. Day-first dates that
// roll over (31/02/2025) are rejected.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, loc)
		if t.Year() != year || int(t.Month()) != month || t.Day() != day {
			return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
		}
		return t, nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromEpochMillis(ms, loc), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// FromEpochMillis converts milliseconds since the Unix epoch to a time in loc
func FromEpochMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// FormatDayFirst renders t as DD/MM/YYYY
func FormatDayFirst(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
