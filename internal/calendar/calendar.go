// Package calendar provides the date arithmetic every streak and rate
// computation is built on.
//
// WHY A CIVIL DATE TYPE?
// A habit is completed "on a day", not at an instant. time.Time carries a
// clock reading and a zone, and adding 24h across a DST change lands on the
// wrong day. Date is a plain (year, month, day) value: it is comparable with
// ==, usable as a map key, and every operation returns a new value, so two
// callers can never alias and mutate the same date.
//
// Day-keys ("2026-03-07") are always produced by Date.Key, so two dates are
// the same day exactly when their keys are equal.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical day-key layout (time package reference date).
const KeyLayout = "2006-01-02"

// Date is a local calendar day. The zero value is not a valid date; use
// New, FromTime or ParseKey.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for year, month, day, normalising overflow the way
// time.Date does (e.g. April 31 becomes May 1).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's own location.
// Convert t with t.In(loc) first to pick the viewer's zone.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseKey parses a YYYY-MM-DD day-key.
func ParseKey(key string) (Date, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid day key %q: %w", key, err)
	}
	return FromTime(t), nil
}

// Key returns the canonical zero-padded YYYY-MM-DD day-key.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// String implements fmt.Stringer.
func (d Date) String() string { return d.Key() }

// Year returns the year of d.
func (d Date) Year() int { return d.year }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month of d, starting at 1.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date, which names no day.
func (d Date) IsZero() bool { return d == Date{} }

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday { return d.midnight().Weekday() }

// IsWeekend reports whether d falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.midnight().AddDate(0, 0, n))
}

// AddMonths returns the first day of the month n months away from d's month.
func (d Date) AddMonths(n int) Date {
	return FromTime(time.Date(d.year, d.month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.compare(o) > 0 }

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of days from a to b (negative if b is
// before a).
func DaysBetween(a, b Date) int {
	return int(b.midnight().Sub(a.midnight()).Hours() / 24)
}

// StartOfWeek returns the Sunday on or before d.
func StartOfWeek(d Date) Date {
	return d.AddDays(-int(d.Weekday()))
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Date) Date {
	return Date{year: d.year, month: d.month, day: 1}
}

// DaysInMonth returns the number of days in d's month.
func DaysInMonth(d Date) int {
	return StartOfMonth(d).AddMonths(1).AddDays(-1).day
}

// midnight is UTC midnight; UTC has no DST so day arithmetic stays exact.
func (d Date) midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) compare(o Date) int {
	switch {
	case d.year != o.year:
		return d.year - o.year
	case d.month != o.month:
		return int(d.month) - int(o.month)
	default:
		return d.day - o.day
	}
}
