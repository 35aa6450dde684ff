// Package timeutil holds calendar-day helpers shared by the mood, journal and
// analytics code. All day boundaries are computed in an explicit location.
package timeutil

import (
	"fmt"
	"time"
)

// DayLayout is the key format used for per-day uniqueness and daily trend buckets.
const DayLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Sunday starting t's week in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month in loc.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// DayKey formats t's calendar day in loc, e.g. "2026-10-14".
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// WeekKey formats t as "YYYY-Www" where ww is the Sunday-first week of the year
// (the strftime %U number: days before the first Sunday fall in week 00).
func WeekKey(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// MonthKey formats t's month in loc, e.g. "2026-10".
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// ParseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. A bare date
// resolves to the start of that day in loc, or to its end when endOfDay is set.
func ParseDate(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	if endOfDay {
		return EndOfDay(t, loc), nil
	}
	return t, nil
}
